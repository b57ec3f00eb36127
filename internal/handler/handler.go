// Package handler exposes the public pages and the admin dashboard as a
// JSON API. Each handler owns its request-scoped state; nothing is shared
// between requests beyond the stores.
package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"clubsite/internal/admingate"
	"clubsite/internal/cloudinary"
	"clubsite/internal/identity"
	"clubsite/internal/queue"
	"clubsite/internal/records"
	"clubsite/internal/stats"
)

// EventStore is the slice of the event repository the handlers use.
type EventStore interface {
	List(ctx context.Context, orderField string) ([]records.Event, error)
	Get(ctx context.Context, id string) (*records.Event, error)
	Create(ctx context.Context, e records.Event) (string, error)
	Update(ctx context.Context, id string, e records.Event) error
	Delete(ctx context.Context, id string) error
}

// CertificateStore is the slice of the certificate repository the handlers use.
type CertificateStore interface {
	List(ctx context.Context) ([]records.Certificate, error)
	Get(ctx context.Context, id string) (*records.Certificate, error)
	Upsert(ctx context.Context, id string, c records.Certificate) error
	Delete(ctx context.Context, id string) error
	FindByStudentID(ctx context.Context, studentID string) ([]records.Certificate, error)
}

// MembershipStore is the slice of the membership repository the handlers use.
type MembershipStore interface {
	List(ctx context.Context) ([]records.Membership, error)
	Create(ctx context.Context, m records.Membership) (string, error)
}

// MessageStore is the slice of the message repository the handlers use.
type MessageStore interface {
	List(ctx context.Context) ([]records.Message, error)
	Create(ctx context.Context, m records.Message) (string, error)
}

// StatsSource serves the membership aggregate.
type StatsSource interface {
	Snapshot(ctx context.Context) (stats.Snapshot, error)
	Invalidate(ctx context.Context)
}

// IdentityService verifies credentials and terminates sessions remotely.
// It doubles as the gate's SessionTerminator.
type IdentityService interface {
	SignIn(ctx context.Context, email, password string) (*identity.Identity, error)
	SignOut(ctx context.Context, uid string) error
}

// SessionRevoker ends local session tokens early (logout).
type SessionRevoker interface {
	Revoke(ctx context.Context, token string, until time.Time) error
}

// Uploader pushes images to the CDN.
type Uploader interface {
	UploadBase64(ctx context.Context, data string) (*cloudinary.UploadResult, error)
	UploadBytes(ctx context.Context, data []byte, filename string) (*cloudinary.UploadResult, error)
}

// Handler bundles the dependencies of all routes.
type Handler struct {
	Events       EventStore
	Certificates CertificateStore
	Memberships  MembershipStore
	Messages     MessageStore
	Grants       admingate.GrantChecker
	Identity     IdentityService
	Stats        StatsSource
	Queue        queue.Queue
	Uploads      Uploader // nil when the CDN is not configured
	Sessions     SessionRevoker

	JWTIssuer     string
	JWTSigningKey string
	SessionTTL    time.Duration
	VerifyBaseURL string
}

// Register mounts the public API and the admin group behind adminAuth.
func (h *Handler) Register(r gin.IRouter, adminAuth gin.HandlerFunc) {
	api := r.Group("/api")
	api.GET("/home", h.Home)
	api.GET("/events", h.ListEvents)
	api.GET("/events/:id", h.EventDetail)
	api.POST("/memberships", h.JoinSubmit)
	api.GET("/memberships/stats", h.MembershipStats)
	api.POST("/messages", h.ContactSubmit)
	api.GET("/certificates/verify", h.VerifyCertificate)
	api.POST("/admin/login", h.Login)

	admin := r.Group("/v1/admin", adminAuth)
	admin.POST("/logout", h.Logout)
	admin.GET("/events", h.AdminEvents)
	admin.POST("/events", h.SaveEvent)
	admin.DELETE("/events/:id", h.DeleteEvent)
	admin.GET("/certificates", h.AdminCertificates)
	admin.PUT("/certificates/:id", h.SaveCertificate)
	admin.DELETE("/certificates/:id", h.DeleteCertificate)
	admin.GET("/memberships", h.AdminMemberships)
	admin.GET("/messages", h.AdminMessages)
	admin.POST("/uploads", h.Upload)
}

// fail maps a backend error onto the response taxonomy: not-found and
// permission-denied are distinct, anything else degrades to a generic
// failure that the user can retry. Never leaves the caller hanging.
func fail(c *gin.Context, err error, generic string) {
	switch {
	case errors.Is(err, records.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case records.IsPermissionDenied(err):
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
	default:
		log.Printf("%s: %v", generic, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": generic})
	}
}

// publish hands a freshly created record to the notification queue. Queue
// trouble must never fail the user's write.
func (h *Handler) publish(ctx context.Context, msgType, id string) {
	if h.Queue == nil {
		return
	}
	if err := h.Queue.Publish(ctx, queue.Message{Type: msgType, Body: []byte(id)}); err != nil {
		log.Printf("queue publish failed: %v", err)
	}
}
