package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/careerpath/internal/learningplan"
	"github.com/abhisek/careerpath/internal/resume"
	"github.com/abhisek/careerpath/internal/tracking"
)

type roleRequest struct {
	TargetRole string `json:"targetRole"`
}

type chatRequest struct {
	Message string `json:"message"`
}

// bindOptionalJSON decodes the body into dst; an empty body leaves dst
// untouched.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (s *Server) health(c *gin.Context) {
	if err := s.app.Store.DB().PingContext(c.Request.Context()); err != nil {
		errorResponse(c, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	success(c, gin.H{
		"status":   "ok",
		"provider": s.app.Provider.ModelID(),
		"components": gin.H{
			"database": "up",
		},
	})
}

func (s *Server) importResume(c *gin.Context) {
	var in resume.ImportInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	in.UserID = c.Param("userId")

	r, err := s.app.Resumes.Import(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	success(c, r)
}

func (s *Server) getResume(c *gin.Context) {
	r, err := s.app.Resumes.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	if r == nil {
		notFound(c, "Resume")
		return
	}
	success(c, r)
}

func (s *Server) generateSkillGap(c *gin.Context) {
	var req roleRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, err.Error())
		return
	}

	profile, err := s.app.SkillGaps.Generate(c.Request.Context(), c.Param("userId"), req.TargetRole)
	if err != nil {
		s.writeError(c, err)
		return
	}
	created(c, profile)
}

func (s *Server) getSkillGap(c *gin.Context) {
	profile, err := s.app.SkillGaps.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	if profile == nil {
		notFound(c, "Skill profile")
		return
	}
	success(c, profile)
}

func (s *Server) generatePlan(c *gin.Context) {
	var hints learningplan.Hints
	if err := bindOptionalJSON(c, &hints); err != nil {
		badRequest(c, err.Error())
		return
	}

	plan, err := s.app.Plans.Generate(c.Request.Context(), c.Param("userId"), hints)
	if err != nil {
		s.writeError(c, err)
		return
	}
	created(c, plan)
}

func (s *Server) getPlan(c *gin.Context) {
	plan, err := s.app.Plans.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	if plan == nil {
		notFound(c, "Learning path")
		return
	}
	success(c, plan)
}

func (s *Server) generateRoadmap(c *gin.Context) {
	var req roleRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		badRequest(c, err.Error())
		return
	}

	rm, err := s.app.Roadmaps.Generate(c.Request.Context(), c.Param("userId"), req.TargetRole)
	if err != nil {
		s.writeError(c, err)
		return
	}
	created(c, rm)
}

func (s *Server) listRoadmaps(c *gin.Context) {
	all, err := s.app.Roadmaps.List(c.Request.Context(), c.Param("userId"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	success(c, all)
}

func (s *Server) getRoadmap(c *gin.Context) {
	rm, err := s.app.Roadmaps.Get(c.Request.Context(), c.Param("userId"), c.Param("role"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	if rm == nil {
		notFound(c, "Roadmap")
		return
	}
	success(c, rm)
}

func (s *Server) recordQuiz(c *gin.Context) {
	var in tracking.QuizInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	in.UserID = c.Param("userId")

	q, err := s.app.Tracking.RecordQuiz(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	created(c, q)
}

func (s *Server) setProgress(c *gin.Context) {
	var in tracking.ProgressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	in.UserID = c.Param("userId")

	p, err := s.app.Tracking.SetProgress(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	success(c, p)
}

func (s *Server) recalculate(c *gin.Context) {
	res, err := s.app.Adaptive.Recalculate(c.Request.Context(), c.Param("userId"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	success(c, res)
}

func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	reply, err := s.app.Chat.Chat(c.Request.Context(), c.Param("userId"), strings.TrimSpace(req.Message))
	if err != nil {
		s.writeError(c, err)
		return
	}
	success(c, reply)
}

func (s *Server) chatHistory(c *gin.Context) {
	history, err := s.app.Chat.History(c.Request.Context(), c.Param("userId"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	success(c, gin.H{"history": history})
}

type compareRequest struct {
	RoleA string `json:"roleA"`
	RoleB string `json:"roleB"`
}

func (s *Server) compareRoles(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	cmp, err := s.app.Career.Compare(c.Request.Context(), c.Param("userId"), req.RoleA, req.RoleB)
	if err != nil {
		s.writeError(c, err)
		return
	}
	success(c, cmp)
}

// careerHandler adapts a single-role advisory call. The role comes from an
// optional {"targetRole": ...} body.
func careerHandler[T any](s *Server, call func(ctx context.Context, userID, role string) (*T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req roleRequest
		if err := bindOptionalJSON(c, &req); err != nil {
			badRequest(c, err.Error())
			return
		}

		out, err := call(c.Request.Context(), c.Param("userId"), req.TargetRole)
		if err != nil {
			s.writeError(c, err)
			return
		}
		success(c, out)
	}
}
