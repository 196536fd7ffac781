package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/deck"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/recall"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/session"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/stats"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/studygen"
	"github.com/abdulsamadj00-tech/Abdul-Samad/internal/tutor"
)

type generateRequest struct {
	Content string `json:"content" binding:"required"`
}

type gradeRequest struct {
	Rating string `json:"rating" binding:"required"`
}

type tutorRequest struct {
	Question string `json:"question" binding:"required"`
}

type checkRequest struct {
	Option string `json:"option" binding:"required"`
}

type tutorReply struct {
	Reply string `json:"reply"`
}

type statsView struct {
	Stats   stats.Stats        `json:"stats"`
	Badges  []stats.Badge      `json:"badges"`
	Chart   []stats.ChartPoint `json:"chart"`
	Weak    []deck.Flashcard   `json:"weakCards"`
	Summary session.Summary    `json:"summary"`
}

func (s *Server) health(c *gin.Context) {
	successResponse(c, "ok", gin.H{"phase": s.session.Phase().String()})
}

func (s *Server) getSession(c *gin.Context) {
	successResponse(c, "Session retrieved", s.session.Snapshot())
}

func (s *Server) getQueue(c *gin.Context) {
	snap := s.session.Snapshot()
	successResponse(c, "Recall queue built", recall.BuildQueue(snap.Flashcards))
}

func (s *Server) getStats(c *gin.Context) {
	snap := s.session.Snapshot()
	successResponse(c, "Stats retrieved", statsView{
		Stats:   snap.Stats,
		Badges:  stats.Badges(snap.Stats, snap.Flashcards),
		Chart:   stats.ChartPoints(snap.Stats.ProgressHistory),
		Weak:    stats.WeakCards(snap.Flashcards),
		Summary: session.BuildSummary(snap),
	})
}

func (s *Server) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "Invalid request format", err)
		return
	}

	err := s.session.Generate(c.Request.Context(), req.Content)
	var genErr *session.GenerationError
	switch {
	case err == nil:
		successResponse(c, "Study material generated", s.session.Snapshot())
	case errors.Is(err, session.ErrEmptyContent):
		badRequestResponse(c, "Study text is empty", err)
	case errors.Is(err, session.ErrInvalidOperation), errors.Is(err, session.ErrSuperseded):
		conflictResponse(c, "Generation not allowed right now", err)
	case errors.As(err, &genErr):
		errorResponse(c, http.StatusBadGateway, "Failed to generate study material", err)
	default:
		errorResponse(c, http.StatusInternalServerError, "Failed to generate study material", err)
	}
}

func (s *Server) gradeCard(c *gin.Context) {
	var req gradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "Invalid request format", err)
		return
	}
	rating, err := deck.ParseRating(req.Rating)
	if err != nil {
		badRequestResponse(c, "Rating must be hard, good or easy", err)
		return
	}

	id := c.Param("id")
	err = s.session.Grade(id, rating)
	switch {
	case err == nil:
		card, _ := s.session.Card(id)
		successResponse(c, "Card graded", gin.H{
			"card":  card,
			"stats": s.session.Snapshot().Stats,
		})
	case errors.Is(err, session.ErrUnknownCard):
		notFoundResponse(c, "Flashcard not found")
	case errors.Is(err, session.ErrInvalidOperation):
		conflictResponse(c, "No study material to grade", err)
	default:
		errorResponse(c, http.StatusInternalServerError, "Failed to grade card", err)
	}
}

func (s *Server) checkMCQ(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "Invalid request format", err)
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	mcqs := s.session.Snapshot().MCQs
	if err != nil || index < 0 || index >= len(mcqs) {
		notFoundResponse(c, "Question not found")
		return
	}

	res, err := studygen.CheckMCQ(mcqs[index], req.Option)
	if err != nil {
		badRequestResponse(c, "Option not offered by this question", err)
		return
	}
	successResponse(c, "Answer checked", res)
}

func (s *Server) askTutor(c *gin.Context) {
	var req tutorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "Invalid request format", err)
		return
	}

	reply, err := s.session.Ask(c.Request.Context(), req.Question)
	switch {
	case err == nil:
		successResponse(c, "Tutor replied", tutorReply{Reply: reply})
	case errors.Is(err, tutor.ErrEmptyQuestion):
		badRequestResponse(c, "Question is empty", err)
	case errors.Is(err, tutor.ErrAwaitingReply), errors.Is(err, tutor.ErrDiscarded):
		conflictResponse(c, "Tutor is busy", err)
	case errors.Is(err, tutor.ErrUnavailable):
		c.JSON(http.StatusBadGateway, APIResponse{
			Success: false,
			Message: "Tutor is unavailable",
			Data:    tutorReply{Reply: reply},
			Error:   err.Error(),
		})
	default:
		errorResponse(c, http.StatusInternalServerError, "Failed to ask tutor", err)
	}
}

func (s *Server) reset(c *gin.Context) {
	s.session.Reset()
	successResponse(c, "Session reset", s.session.Snapshot())
}
