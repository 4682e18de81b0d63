package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careerpath/internal/career"
	"github.com/abhisek/careerpath/internal/store"
)

// isolate keeps the host's config files and credentials out of a CLI run.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	for _, name := range []string{
		"CAREERPATH_LLM_PROVIDER", "LLM_PROVIDER",
		"CAREERPATH_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY",
		"CAREERPATH_OPENAI_API_KEY", "OPENAI_API_KEY",
		"CAREERPATH_GEMINI_API_KEY", "GEMINI_API_KEY",
		"CAREERPATH_OPENROUTER_API_KEY", "OPENROUTER_API_KEY",
		"CAREERPATH_MISTRAL_API_KEY", "MISTRAL_API_KEY",
		"CAREERPATH_DATABASE_DSN", "CAREERPATH_DB",
		"CAREERPATH_REDIS_ADDR", "REDIS_ADDR",
	} {
		t.Setenv(name, "")
	}
	return dir
}

// run executes the root command and resets the flags it touched.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		_ = rootCmd.PersistentFlags().Set("json", "false")
		_ = rootCmd.PersistentFlags().Set("db", "")
		_ = skillsGenerateCmd.Flags().Set("role", "")
		_ = careerCompareCmd.Flags().Set("role-a", "")
		_ = careerCompareCmd.Flags().Set("role-b", "")
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI_ResumeAndSkills(t *testing.T) {
	dir := isolate(t)
	db := filepath.Join(dir, "data", "careerpath.db")

	resumeFile := filepath.Join(dir, "resume.json")
	require.NoError(t, os.WriteFile(resumeFile, []byte(`{
		"rawText": "Backend engineer. Go, PostgreSQL, Docker.",
		"parsed": {"technicalSkills": ["Go", "PostgreSQL"], "tools": ["Docker"]}
	}`), 0o644))

	out, err := run(t, "--db", db, "--json", "resume", "import", "u1", resumeFile)
	require.NoError(t, err)

	var r store.Resume
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "u1", r.UserID)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, r.Parsed.TechnicalSkills)

	out, err = run(t, "--db", db, "resume", "show", "u1")
	require.NoError(t, err)
	assert.Contains(t, out, "ATS score")
	assert.Contains(t, out, "Go, PostgreSQL")

	out, err = run(t, "--db", db, "--json", "skills", "generate", "u1", "--role", "Backend Developer")
	require.NoError(t, err)

	var p store.SkillProfile
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, "Backend Developer", p.TargetRole)
	assert.True(t, p.Fallback, "no provider is configured")
}

func TestCLI_ShowMissing(t *testing.T) {
	dir := isolate(t)
	_, err := run(t, "--db", filepath.Join(dir, "careerpath.db"), "resume", "show", "nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no resume for user "nobody"`)
}

func TestCLI_LLMStatsEmpty(t *testing.T) {
	dir := isolate(t)
	out, err := run(t, "--db", filepath.Join(dir, "careerpath.db"), "llm", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM usage recorded yet.")
}

func TestCLI_Career(t *testing.T) {
	dir := isolate(t)
	db := filepath.Join(dir, "careerpath.db")

	out, err := run(t, "--db", db, "--json", "career", "compare", "u1", "--role-a", "SRE", "--role-b", "Data Engineer")
	require.NoError(t, err)
	var cmp career.RoleComparison
	require.NoError(t, json.Unmarshal([]byte(out), &cmp))
	assert.True(t, cmp.Fallback, "no provider is configured")
	assert.Equal(t, "SRE", cmp.Verdict.Role)

	out, err = run(t, "--db", db, "career", "risk", "u1")
	require.NoError(t, err)
	assert.Contains(t, out, "Career risk")
	assert.Contains(t, out, "Continuous Learning")

	_, err = run(t, "--db", db, "career", "compare", "u1", "--role-a", "SRE", "--role-b", "sre")
	assert.ErrorIs(t, err, career.ErrSameRole)
}

func TestRenderUsage(t *testing.T) {
	cost := 0.25
	rep := usageReport{
		ByPurpose: []store.PurposeUsage{
			{Purpose: "skill-gap", Calls: 2, InputTokens: 100, OutputTokens: 50, AvgLatencyMs: 150},
			{Purpose: "chat", Calls: 1, InputTokens: 10, OutputTokens: 5, AvgLatencyMs: 80},
		},
		ByModel: []modelCostRow{
			{ModelUsage: store.ModelUsage{Model: "gpt-4o-mini", Calls: 2, InputTokens: 100, OutputTokens: 50}, CostUSD: &cost},
			{ModelUsage: store.ModelUsage{Model: "homegrown", Calls: 1, InputTokens: 10, OutputTokens: 5}},
		},
		TotalCost: cost,
		Unpriced:  []string{"homegrown"},
	}

	var buf bytes.Buffer
	renderUsage(&buf, rep)
	out := buf.String()

	assert.Contains(t, out, "skill-gap")
	assert.Contains(t, out, "165") // 110 in + 55 out
	assert.Contains(t, out, "TOTAL (partial)")
	assert.Contains(t, out, "$0.25")
	assert.Contains(t, out, "Pricing unavailable for: homegrown")
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0042", formatCost(0.0042))
	assert.Equal(t, "$1.50", formatCost(1.5))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "claude", truncate("claude-sonnet", 6))
	assert.False(t, strings.Contains(truncate("abcdef", 3), "d"))
}
