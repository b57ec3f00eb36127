package handler

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"clubsite/internal/admingate"
	"clubsite/internal/auth"
	"clubsite/internal/cloudinary"
	"clubsite/internal/identity"
	"clubsite/internal/records"
	"clubsite/internal/validate"
)

const defaultIssuer = "GCPC"

// Login verifies credentials against the identity service, runs the
// authorization gate, and issues a session token for admitted admins.
// Denial (no grant, or a failed grant lookup) terminates the remote session.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var fm validate.Form
	ok := fm.Email("email", req.Email)
	ok = fm.Require("password", "Password", req.Password) && ok
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fm.Errors()})
		return
	}

	ctx := c.Request.Context()
	id, err := h.Identity.SignIn(ctx, strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "login failed, check your credentials"})
			return
		}
		fail(c, err, "login failed, please try again")
		return
	}

	gate := admingate.New(h.Grants, h.Identity)
	state := gate.OnAuthChange(ctx, &admingate.Identity{UID: id.UID, Email: id.Email})
	if state != admingate.StateDashboard {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required", "state": string(state)})
		return
	}

	session, err := auth.Issue(id.UID, id.Email, h.JWTIssuer, h.JWTSigningKey, h.SessionTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":     session.Token,
		"expiresAt": session.ExpiresAt.Unix(),
		"email":     id.Email,
		"state":     string(admingate.StateDashboard),
	})
}

// Logout ends the current session: the token is revoked locally and the
// identity's remote sessions are closed.
func (h *Handler) Logout(c *gin.Context) {
	claimsAny, _ := c.Get("claims")
	claims, _ := claimsAny.(auth.Claims)
	tokenAny, _ := c.Get("token")
	token, _ := tokenAny.(string)

	ctx := c.Request.Context()
	if h.Sessions != nil && token != "" && claims.ExpiresAt != nil {
		if err := h.Sessions.Revoke(ctx, token, claims.ExpiresAt.Time); err != nil {
			log.Printf("session revoke failed: %v", err)
		}
	}
	if err := h.Identity.SignOut(ctx, claims.Subject); err != nil {
		log.Printf("identity sign-out failed: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"state": string(admingate.StateLogin)})
}

// AdminEvents lists events for the dashboard table, ascending by deadline.
func (h *Handler) AdminEvents(c *gin.Context) {
	events, err := h.Events.List(c.Request.Context(), records.OrderByDeadline)
	if err != nil {
		fail(c, err, "failed to load events")
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// SaveEvent creates or updates an event. A non-empty id in the payload is
// the edit target and routes to update; otherwise a new record is created.
// The response carries the re-fetched table.
func (h *Handler) SaveEvent(c *gin.Context) {
	var req struct {
		ID               string `json:"id"`
		Title            string `json:"title"`
		Wing             string `json:"wing"`
		Semester         string `json:"semester"`
		DateISO          string `json:"dateISO"`
		DeadlineISO      string `json:"deadlineISO"`
		Venue            string `json:"venue"`
		BannerURL        string `json:"bannerUrl"`
		Description      string `json:"description"`
		RegistrationLink string `json:"registrationLink"`
		Status           string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var fm validate.Form
	ok := fm.Require("title", "Title", req.Title)
	ok = fm.Require("semester", "Semester", req.Semester) && ok
	ok = fm.Require("dateISO", "Date", req.DateISO) && ok
	ok = fm.Require("status", "Status", req.Status) && ok
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fm.Errors()})
		return
	}

	e := records.Event{
		Title:            strings.TrimSpace(req.Title),
		Wing:             strings.ToLower(strings.TrimSpace(req.Wing)),
		Semester:         strings.TrimSpace(req.Semester),
		DateISO:          req.DateISO,
		DeadlineISO:      req.DeadlineISO,
		Venue:            strings.TrimSpace(req.Venue),
		BannerURL:        strings.TrimSpace(req.BannerURL),
		Description:      strings.TrimSpace(req.Description),
		RegistrationLink: strings.TrimSpace(req.RegistrationLink),
		Status:           req.Status,
	}

	ctx := c.Request.Context()
	id := strings.TrimSpace(req.ID)
	if id != "" {
		if err := h.Events.Update(ctx, id, e); err != nil {
			fail(c, err, "failed to save event")
			return
		}
		recordWrites.WithLabelValues("events", "update").Inc()
	} else {
		created, err := h.Events.Create(ctx, e)
		if err != nil {
			fail(c, err, "failed to save event")
			return
		}
		id = created
		recordWrites.WithLabelValues("events", "create").Inc()
	}

	events, err := h.Events.List(ctx, records.OrderByDeadline)
	if err != nil {
		fail(c, err, "event saved but reloading the table failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "events": events})
}

// DeleteEvent removes an event. The confirmation prompt of the dashboard is
// enforced here: without confirm=true nothing is deleted.
func (h *Handler) DeleteEvent(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "confirmation required"})
		return
	}
	ctx := c.Request.Context()
	if err := h.Events.Delete(ctx, c.Param("id")); err != nil {
		fail(c, err, "failed to delete event")
		return
	}
	recordWrites.WithLabelValues("events", "delete").Inc()

	events, err := h.Events.List(ctx, records.OrderByDeadline)
	if err != nil {
		fail(c, err, "event deleted but reloading the table failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// AdminCertificates lists certificates, optionally filtered to one student.
func (h *Handler) AdminCertificates(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		certs []records.Certificate
		err   error
	)
	if sid := strings.TrimSpace(c.Query("student_id")); sid != "" {
		certs, err = h.Certificates.FindByStudentID(ctx, sid)
	} else {
		certs, err = h.Certificates.List(ctx)
	}
	if err != nil {
		fail(c, err, "failed to load certificates")
		return
	}
	c.JSON(http.StatusOK, gin.H{"certificates": certs})
}

// SaveCertificate upserts a certificate under the id in the path. The id is
// chosen at creation time and immutable afterward; repeated saves to the
// same id merge into one record.
func (h *Handler) SaveCertificate(c *gin.Context) {
	certID := strings.TrimSpace(c.Param("id"))
	if certID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Certificate ID is required."})
		return
	}

	var req struct {
		Name         string `json:"name"`
		StudentID    string `json:"student_id"`
		Course       string `json:"course"`
		IssueDate    string `json:"issue_date"`
		Status       string `json:"status"`
		IssuedBy     string `json:"issued_by"`
		CertImageURL string `json:"certImageUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var fm validate.Form
	ok := fm.Require("name", "Name", req.Name)
	ok = fm.Require("student_id", "Student ID", req.StudentID) && ok
	ok = fm.Require("course", "Course", req.Course) && ok
	ok = fm.Require("issue_date", "Issue Date", req.IssueDate) && ok
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fm.Errors()})
		return
	}

	cert := records.Certificate{
		Name:         strings.TrimSpace(req.Name),
		StudentID:    strings.TrimSpace(req.StudentID),
		Course:       strings.TrimSpace(req.Course),
		IssueDate:    req.IssueDate,
		Status:       req.Status,
		IssuedBy:     strings.TrimSpace(req.IssuedBy),
		CertImageURL: strings.TrimSpace(req.CertImageURL),
	}
	if cert.Status == "" {
		cert.Status = "VALID"
	}
	if cert.IssuedBy == "" {
		cert.IssuedBy = defaultIssuer
	}

	ctx := c.Request.Context()
	if err := h.Certificates.Upsert(ctx, certID, cert); err != nil {
		fail(c, err, "failed to save certificate")
		return
	}
	recordWrites.WithLabelValues("certificates", "upsert").Inc()

	certs, err := h.Certificates.List(ctx)
	if err != nil {
		fail(c, err, "certificate saved but reloading the table failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": certID, "certificates": certs})
}

// DeleteCertificate removes a certificate after explicit confirmation.
func (h *Handler) DeleteCertificate(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "confirmation required"})
		return
	}
	ctx := c.Request.Context()
	if err := h.Certificates.Delete(ctx, c.Param("id")); err != nil {
		fail(c, err, "failed to delete certificate")
		return
	}
	recordWrites.WithLabelValues("certificates", "delete").Inc()

	certs, err := h.Certificates.List(ctx)
	if err != nil {
		fail(c, err, "certificate deleted but reloading the table failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"certificates": certs})
}

// AdminMemberships serves the read-only memberships table.
func (h *Handler) AdminMemberships(c *gin.Context) {
	list, err := h.Memberships.List(c.Request.Context())
	if err != nil {
		fail(c, err, "failed to load memberships")
		return
	}
	c.JSON(http.StatusOK, gin.H{"memberships": list})
}

// AdminMessages serves the read-only messages table.
func (h *Handler) AdminMessages(c *gin.Context) {
	list, err := h.Messages.List(c.Request.Context())
	if err != nil {
		fail(c, err, "failed to load messages")
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": list})
}

// Upload pushes a banner or certificate image to the CDN and returns its
// public URL. Accepts a multipart file or a JSON base64 data URL.
func (h *Handler) Upload(c *gin.Context) {
	if h.Uploads == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}

	ctx := c.Request.Context()
	var result *cloudinary.UploadResult
	var err error

	if strings.Contains(c.ContentType(), "multipart/form-data") {
		file, header, ferr := c.Request.FormFile("file")
		if ferr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file field required"})
			return
		}
		defer file.Close()
		data, ferr := io.ReadAll(file)
		if ferr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "read file failed"})
			return
		}
		result, err = h.Uploads.UploadBytes(ctx, data, header.Filename)
	} else {
		var body struct {
			Data string `json:"data" binding:"required"`
		}
		if berr := c.ShouldBindJSON(&body); berr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "provide {\"data\": \"<base64 data URL>\"}"})
			return
		}
		result, err = h.Uploads.UploadBase64(ctx, body.Data)
	}

	if err != nil {
		log.Printf("cloudinary upload failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "image upload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"url":       result.SecureURL,
		"public_id": result.PublicID,
		"width":     result.Width,
		"height":    result.Height,
		"bytes":     result.Bytes,
	})
}
