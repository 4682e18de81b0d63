package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Column names shared by the document tables.
const (
	ColID         = "id"
	ColUserID     = "user_id"
	ColTargetRole = "target_role"
	ColQuizID     = "quiz_id"
	ColTakenAt    = "taken_at"
	ColData       = "data"
	ColUpdatedAt  = "updated_at"
)

// docColumns returns the column set of a keyed document table: an
// autoincrement id, the key columns, the JSON document and its write time.
func docColumns(keys ...string) []*schema.Column {
	cols := []*schema.Column{
		{Name: ColID, Type: field.TypeInt, Increment: true},
	}
	for _, k := range keys {
		cols = append(cols, &schema.Column{Name: k, Type: field.TypeString})
	}
	return append(cols,
		&schema.Column{Name: ColData, Type: field.TypeJSON},
		&schema.Column{Name: ColUpdatedAt, Type: field.TypeInt64},
	)
}

// docTableDef builds a table whose key columns carry a unique index.
func docTableDef(name string, keys ...string) *schema.Table {
	cols := docColumns(keys...)
	return &schema.Table{
		Name:       name,
		Columns:    cols,
		PrimaryKey: []*schema.Column{cols[0]},
		Indexes: []*schema.Index{
			{
				Name:    name + "_key",
				Unique:  true,
				Columns: cols[1 : 1+len(keys)],
			},
		},
	}
}

var (
	// ResumesTable holds one resume document per user.
	ResumesTable = docTableDef("resumes", ColUserID)
	// SkillProfilesTable holds one skill profile per user.
	SkillProfilesTable = docTableDef("skill_profiles", ColUserID)
	// LearningPathsTable holds one learning path per user.
	LearningPathsTable = docTableDef("learning_paths", ColUserID)
	// CareerRoadmapsTable holds one roadmap per (user, target role).
	CareerRoadmapsTable = docTableDef("career_roadmaps", ColUserID, ColTargetRole)
	// ProgressSignalsTable holds one progress signal per user.
	ProgressSignalsTable = docTableDef("progress_signals", ColUserID)
	// ConversationLogsTable holds one capped conversation log per user.
	ConversationLogsTable = docTableDef("conversation_logs", ColUserID)

	// QuizResultsColumns holds the columns for the append-only "quiz_results" table.
	QuizResultsColumns = []*schema.Column{
		{Name: ColID, Type: field.TypeInt, Increment: true},
		{Name: ColQuizID, Type: field.TypeString},
		{Name: ColUserID, Type: field.TypeString},
		{Name: ColTakenAt, Type: field.TypeInt64},
		{Name: ColData, Type: field.TypeJSON},
		{Name: ColUpdatedAt, Type: field.TypeInt64},
	}
	// QuizResultsTable holds the schema information for the "quiz_results" table.
	QuizResultsTable = &schema.Table{
		Name:       "quiz_results",
		Columns:    QuizResultsColumns,
		PrimaryKey: []*schema.Column{QuizResultsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "quiz_results_key",
				Unique:  true,
				Columns: []*schema.Column{QuizResultsColumns[1]},
			},
			{
				Name:    "quizresult_user_id_taken_at",
				Unique:  false,
				Columns: []*schema.Column{QuizResultsColumns[2], QuizResultsColumns[3]},
			},
		},
	}

	// LlmRequestEventsColumns holds the columns for the "llm_request_events" table.
	LlmRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// LlmRequestEventsTable holds the schema information for the "llm_request_events" table.
	LlmRequestEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    LlmRequestEventsColumns,
		PrimaryKey: []*schema.Column{LlmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "llmrequestevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{LlmRequestEventsColumns[1]},
			},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		ResumesTable,
		SkillProfilesTable,
		LearningPathsTable,
		CareerRoadmapsTable,
		ProgressSignalsTable,
		ConversationLogsTable,
		QuizResultsTable,
		LlmRequestEventsTable,
	}
)
