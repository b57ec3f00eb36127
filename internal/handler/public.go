package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"clubsite/internal/display"
	"clubsite/internal/queue"
	"clubsite/internal/records"
	"clubsite/internal/validate"
)

// Verify verdicts.
const (
	VerdictValid   = "valid"
	VerdictWarning = "warning"
	VerdictInvalid = "invalid"
)

// Home serves the home page payload: upcoming events, the announcement
// ticker, and the top highlight line.
func (h *Handler) Home(c *gin.Context) {
	events, err := h.Events.List(c.Request.Context(), records.OrderByDate)
	if err != nil {
		fail(c, err, "failed to load events")
		return
	}

	var upcoming []records.Event
	for _, e := range events {
		if display.IsUpcoming(e) {
			upcoming = append(upcoming, e)
		}
	}

	ticker := make([]string, 0, len(upcoming))
	for _, e := range upcoming {
		semester := e.Semester
		if semester == "" {
			semester = "GCPC"
		}
		ticker = append(ticker, e.Title+" | "+display.FormatDate(e.DateISO)+" | "+semester)
	}

	highlight := "Upcoming Highlight: New events and workshops will be announced soon."
	if len(upcoming) > 0 {
		top := upcoming[0]
		highlight = "Upcoming Highlight: " + top.Title
		if top.DeadlineISO != "" {
			highlight += " | Last Registration: " + display.FormatDate(top.DeadlineISO)
		}
	}

	cards := upcoming
	if len(cards) > 6 {
		cards = cards[:6]
	}
	c.JSON(http.StatusOK, gin.H{"events": cards, "ticker": ticker, "highlight": highlight})
}

// ListEvents serves upcoming events, optionally filtered to one wing.
func (h *Handler) ListEvents(c *gin.Context) {
	events, err := h.Events.List(c.Request.Context(), records.OrderByDate)
	if err != nil {
		fail(c, err, "failed to load events")
		return
	}

	wing := strings.ToLower(c.Query("wing"))
	limit := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	filtered := make([]records.Event, 0, len(events))
	for _, e := range events {
		if !display.IsUpcoming(e) {
			continue
		}
		if wing != "" && display.NormalizeWing(e) != wing {
			continue
		}
		filtered = append(filtered, e)
	}
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}
	c.JSON(http.StatusOK, gin.H{"events": filtered})
}

// EventDetail serves one event with its description rendered to HTML.
func (h *Handler) EventDetail(c *gin.Context) {
	e, err := h.Events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "failed to load event details")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"event":           e,
		"descriptionHTML": display.RenderMarkdown(e.Description),
		"date":            display.FormatDate(e.DateISO),
		"deadline":        display.FormatDate(e.DeadlineISO),
		"wing":            display.NormalizeWing(*e),
	})
}

// JoinSubmit accepts a membership application from the join form.
func (h *Handler) JoinSubmit(c *gin.Context) {
	var req struct {
		Name       string `json:"name"`
		Email      string `json:"email"`
		StudentID  string `json:"studentId"`
		Department string `json:"department"`
		Semester   string `json:"semester"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var fm validate.Form
	ok := fm.Require("name", "Name", req.Name)
	ok = fm.Email("email", req.Email) && ok
	ok = fm.Require("studentId", "Student ID", req.StudentID) && ok
	ok = fm.Require("department", "Department", req.Department) && ok
	ok = fm.Require("semester", "Semester", req.Semester) && ok
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fm.Errors()})
		return
	}

	m := records.Membership{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.TrimSpace(req.Email),
		StudentID:  strings.TrimSpace(req.StudentID),
		Department: strings.TrimSpace(req.Department),
		Semester:   strings.TrimSpace(req.Semester),
	}
	id, err := h.Memberships.Create(c.Request.Context(), m)
	if err != nil {
		fail(c, err, "could not submit form, please try again")
		return
	}
	recordWrites.WithLabelValues("memberships", "create").Inc()
	h.publish(c.Request.Context(), queue.TypeMembership, id)
	if h.Stats != nil {
		h.Stats.Invalidate(c.Request.Context())
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// MembershipStats serves the aggregate counts shown on the join page.
func (h *Handler) MembershipStats(c *gin.Context) {
	snap, err := h.Stats.Snapshot(c.Request.Context())
	if err != nil {
		fail(c, err, "failed to load membership stats")
		return
	}
	c.JSON(http.StatusOK, snap)
}

// ContactSubmit accepts a contact-form message.
func (h *Handler) ContactSubmit(c *gin.Context) {
	var req struct {
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var fm validate.Form
	ok := fm.Email("email", req.Email)
	ok = fm.Require("subject", "Subject", req.Subject) && ok
	ok = fm.Require("message", "Message", req.Message) && ok
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fm.Errors()})
		return
	}

	m := records.Message{
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	id, err := h.Messages.Create(c.Request.Context(), m)
	if err != nil {
		fail(c, err, "failed to submit message, please try again")
		return
	}
	recordWrites.WithLabelValues("messages", "create").Inc()
	h.publish(c.Request.Context(), queue.TypeContactMessage, id)
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// VerifyCertificate checks a certificate id from the verify form or a
// ?cert_id= deep link. A missing record is a distinct "invalid" outcome,
// not an error. The response carries the canonical shareable URL.
func (h *Handler) VerifyCertificate(c *gin.Context) {
	certID := strings.TrimSpace(c.Query("cert_id"))
	if certID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Certificate ID is required."})
		return
	}

	shareURL := h.VerifyBaseURL + "?cert_id=" + url.QueryEscape(certID)

	cert, err := h.Certificates.Get(c.Request.Context(), certID)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			certificateChecks.WithLabelValues(VerdictInvalid).Inc()
			c.JSON(http.StatusOK, gin.H{
				"result":  VerdictInvalid,
				"message": "Invalid Certificate",
				"url":     shareURL,
			})
			return
		}
		fail(c, err, "verification failed, please try again")
		return
	}

	status := strings.ToUpper(cert.Status)
	verdict := VerdictWarning
	message := "Certificate found but status is " + status + "."
	if status == "VALID" {
		verdict = VerdictValid
		message = "Certificate is VALID"
	}
	certificateChecks.WithLabelValues(verdict).Inc()
	c.JSON(http.StatusOK, gin.H{
		"result":      verdict,
		"message":     message,
		"certificate": cert,
		"issueDate":   display.FormatDate(cert.IssueDate),
		"url":         shareURL,
	})
}
