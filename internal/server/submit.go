package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mark3labs/chainform/internal/form"
	"github.com/mark3labs/chainform/internal/ledger"
	"github.com/mark3labs/chainform/internal/logger"
)

// Submission is the request body of POST /api/submit. Pointers distinguish an
// absent field from an empty one.
type Submission struct {
	Mode       *string `json:"mode"`
	Topic      *string `json:"topic"`
	Category   *string `json:"category"`
	ChosenDate *string `json:"choose_date"`
	ChosenTime *string `json:"choose_time"`
	Budget     *int    `json:"budget"`
	Urgency    *string `json:"urgency"`
}

// SubmitResponse is returned for an accepted submission
type SubmitResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

// Field format messages
const (
	msgModeUnknown    = "Mode must be one of: Basic, Advanced"
	msgDateFormat     = "Date must be a valid date in YYYY-MM-DD format"
	msgTimeFormat     = "Time must be a valid time in HH:MM format"
	msgBudgetRange    = "Budget must be between 0 and 5000"
	msgBudgetMultiple = "Budget must be a multiple of 100"
	msgInternal       = "Internal server error"
)

const dateLayout = "2006-01-02"

var timeLayouts = []string{"15:04", "15:04:05"}

func (s *Server) handleSubmit(c *gin.Context) {
	var sub Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Detail: "Invalid request body: " + err.Error(),
		})
		return
	}

	if msgs := checkFields(&sub); len(msgs) > 0 {
		reject(c, msgs)
		return
	}

	st := sub.State()
	if errs := form.Validate(st); !errs.Valid() {
		msgs := make([]string, 0, len(errs))
		for _, f := range errs.Keys() {
			msgs = append(msgs, errs[f])
		}
		reject(c, msgs)
		return
	}

	rec := ledger.Record{
		ID:         s.newID(),
		ReceivedAt: time.Now().UTC(),
		Payload:    form.BuildPayload(st),
	}
	if err := s.recorder.Record(c.Request.Context(), rec); err != nil {
		logger.Error("Failed to record submission %s: %v", rec.ID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: msgInternal})
		return
	}

	logger.Info("Form submission received: id=%s mode=%s", rec.ID, rec.Payload.Mode)
	c.JSON(http.StatusOK, SubmitResponse{Status: "ok", ID: rec.ID})
}

func (s *Server) listSubmissions(c *gin.Context) {
	recs, err := s.recorder.List(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list submissions: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: msgInternal})
		return
	}
	if recs == nil {
		recs = []ledger.Record{}
	}
	c.JSON(http.StatusOK, recs)
}

func reject(c *gin.Context, msgs []string) {
	detail := strings.Join(msgs, "; ")
	logger.Debug("Rejected submission: %s", detail)
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Detail: detail})
}

// checkFields validates literals and formats of the individual fields, before
// any rule that spans steps is applied.
func checkFields(sub *Submission) []string {
	var msgs []string

	switch {
	case sub.Mode == nil || *sub.Mode == "":
		msgs = append(msgs, form.MsgModeRequired)
	case !form.Mode(*sub.Mode).Valid():
		msgs = append(msgs, msgModeUnknown)
	}

	if v := str(sub.Category); v != "" && !form.Category(v).Valid() {
		msgs = append(msgs, form.MsgCategoryUnknown)
	}
	if v := str(sub.Urgency); v != "" && !form.Urgency(v).Valid() {
		msgs = append(msgs, form.MsgUrgencyUnknown)
	}

	if v := str(sub.ChosenDate); v != "" {
		if _, err := time.Parse(dateLayout, v); err != nil {
			msgs = append(msgs, msgDateFormat)
		}
	}
	if v := str(sub.ChosenTime); v != "" && !validTime(v) {
		msgs = append(msgs, msgTimeFormat)
	}

	if sub.Budget != nil {
		b := *sub.Budget
		if b < form.BudgetMin || b > form.BudgetMax {
			msgs = append(msgs, msgBudgetRange)
		}
		if b%form.BudgetStep != 0 {
			msgs = append(msgs, msgBudgetMultiple)
		}
	}

	return msgs
}

// State converts a checked submission into form state.
func (sub *Submission) State() form.State {
	st := form.State{
		Mode:       form.Mode(str(sub.Mode)),
		Topic:      str(sub.Topic),
		Category:   form.Category(str(sub.Category)),
		ChosenDate: str(sub.ChosenDate),
		ChosenTime: str(sub.ChosenTime),
		Urgency:    form.Urgency(str(sub.Urgency)),
	}
	if sub.Budget != nil {
		b := *sub.Budget
		st.Budget = &b
	}
	return st
}

func validTime(v string) bool {
	for _, layout := range timeLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
