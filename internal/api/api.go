package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"cardly/internal/auth"
	"cardly/internal/models"
	"cardly/internal/render"
	"cardly/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

type contextKey string

const userContextKey contextKey = "user"

// Uploader stores uploaded images and removes them once no card uses them.
// *storage.Storage implements it.
type Uploader interface {
	UploadImage(ctx context.Context, r io.Reader) (string, error)
	// KeyFromURL returns "" for URLs the uploader did not produce.
	KeyFromURL(u string) string
	Delete(ctx context.Context, key string) error
}

// Options configures an API beyond its store.
type Options struct {
	Origin     string   // scheme://host public cards are served from
	QRProvider string   // external QR image service; empty for the default
	Uploader   Uploader // nil disables POST /upload
	Log        *zap.Logger
}

type API struct {
	store      *store.Store
	auth       *auth.Manager
	uploader   Uploader
	log        *zap.Logger
	validate   *validator.Validate
	origin     string
	qrProvider string

	now       func() time.Time
	newTicker func(time.Duration) render.Ticker
}

func New(s *store.Store, opts Options) *API {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &API{
		store:      s,
		auth:       auth.New(s),
		uploader:   opts.Uploader,
		log:        opts.Log,
		validate:   newValidator(),
		origin:     strings.TrimRight(opts.Origin, "/"),
		qrProvider: opts.QRProvider,
		now:        time.Now,
		newTicker:  render.NewTicker,
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("headershape", func(fl validator.FieldLevel) bool {
		return render.IsHeaderShape(fl.Field().String())
	})
	return v
}

// getUserFromContext extracts the authenticated user from the request context
func getUserFromContext(r *http.Request) *models.User {
	user, ok := r.Context().Value(userContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// AuthMiddleware checks for valid session token in Authorization header or cookie
func (a *API) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := auth.TokenFromRequest(r)
		if token == "" {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		session, err := a.auth.Validate(r.Context(), token)
		if errors.Is(err, auth.ErrSessionExpired) {
			respondError(w, http.StatusUnauthorized, "Session expired")
			return
		}
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid session")
			return
		}

		user, err := a.store.GetUser(r.Context(), session.UserID)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "User not found")
			return
		}

		if user.IsLocked {
			respondError(w, http.StatusForbidden, "Account is locked")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminMiddleware requires the user to be an admin
func (a *API) AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := getUserFromContext(r)
		if user == nil || !user.IsAdmin {
			respondError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *API) Routes() chi.Router {
	r := chi.NewRouter()

	// Public auth endpoints
	r.Post("/auth/register", a.register)
	r.Post("/auth/login", a.login)
	r.Post("/auth/logout", a.logout)
	r.Get("/auth/check", a.checkAuth)

	// Public card endpoints
	r.Route("/public/cards/{id}", func(r chi.Router) {
		r.Get("/", a.getPublicCard)
		r.Get("/qr.png", a.getCardQR)
		r.Get("/vcard", a.getCardVCard)
		r.Get("/countdown", a.streamCountdown)
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(a.AuthMiddleware)

		// User profile
		r.Get("/auth/me", a.getMe)
		r.Put("/auth/me", a.updateMe)

		// Slugs
		r.Get("/slugs/suggest", a.suggestSlug)
		r.Get("/slugs/{slug}", a.checkSlug)

		// Cards
		r.Route("/cards", func(r chi.Router) {
			r.Get("/", a.listCards)
			r.Post("/", a.createCard)
			r.Get("/{id}", a.getCard)
			r.Put("/{id}", a.updateCard)
			r.Delete("/{id}", a.deleteCard)
		})

		// Templates are readable by everyone picking one for a card
		r.Get("/templates", a.listTemplates)
		r.Get("/templates/{id}", a.getTemplate)
		r.Get("/templates/{id}/preview", a.previewTemplate)

		// Images
		r.Post("/upload", a.upload)

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(a.AdminMiddleware)
			r.Post("/templates", a.createTemplate)
			r.Put("/templates/{id}", a.updateTemplate)
			r.Delete("/templates/{id}", a.deleteTemplate)
			r.Post("/templates/preview", a.previewDraftTemplate)

			r.Get("/admin/users", a.listUsers)
			r.Put("/admin/users/{id}/lock", a.lockUser)
			r.Put("/admin/users/{id}/unlock", a.unlockUser)
			r.Delete("/admin/users/{id}", a.deleteUser)
		})
	})

	return r
}

// Auth handlers

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !a.decode(w, r, &req) {
		return
	}
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := a.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	ctx := r.Context()
	if _, err := a.store.GetUserByUsername(ctx, req.Username); err == nil {
		respondError(w, http.StatusConflict, "Username already taken")
		return
	}
	if _, err := a.store.GetUserByEmail(ctx, req.Email); err == nil {
		respondError(w, http.StatusConflict, "Email already registered")
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	// First user is admin
	userCount, err := a.store.CountUsers(ctx)
	if err != nil {
		a.serverError(w, "count users", err)
		return
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		DisplayName:  req.Username,
		IsAdmin:      userCount == 0,
	}
	if err := a.store.CreateUser(ctx, user); err != nil {
		a.serverError(w, "create user", err)
		return
	}

	a.startSession(w, r, user, http.StatusCreated)
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"` // Can be username or email
		Password string `json:"password"`
	}
	if !a.decode(w, r, &req) {
		return
	}
	login := strings.ToLower(strings.TrimSpace(req.Username))

	var user *models.User
	var err error
	if strings.Contains(login, "@") {
		user, err = a.store.GetUserByEmail(r.Context(), login)
	} else {
		user, err = a.store.GetUserByUsername(r.Context(), login)
	}
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if user.IsLocked {
		respondError(w, http.StatusForbidden, "Account is locked")
		return
	}

	a.startSession(w, r, user, http.StatusOK)
}

func (a *API) startSession(w http.ResponseWriter, r *http.Request, user *models.User, status int) {
	session, err := a.auth.Issue(r.Context(), user.ID)
	if err != nil {
		a.serverError(w, "create session", err)
		return
	}
	auth.SetCookie(w, r, session)

	respondJSON(w, status, map[string]interface{}{
		"user":      user,
		"token":     session.Token,
		"expiresAt": session.ExpiresAt.Format(time.RFC3339),
	})
}

func (a *API) logout(w http.ResponseWriter, r *http.Request) {
	if err := a.auth.Revoke(r.Context(), auth.TokenFromRequest(r)); err != nil {
		a.log.Warn("revoke session", zap.Error(err))
	}
	auth.ClearCookie(w)
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) checkAuth(w http.ResponseWriter, r *http.Request) {
	session, err := a.auth.Validate(r.Context(), auth.TokenFromRequest(r))
	if err != nil {
		respondJSON(w, http.StatusOK, map[string]interface{}{"authenticated": false})
		return
	}

	user, err := a.store.GetUser(r.Context(), session.UserID)
	if err != nil || user.IsLocked {
		respondJSON(w, http.StatusOK, map[string]interface{}{"authenticated": false})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": true,
		"user":          user,
	})
}

func (a *API) getMe(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, getUserFromContext(r))
}

func (a *API) updateMe(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var req struct {
		DisplayName *string `json:"displayName" validate:"omitempty,max=100"`
		Password    *string `json:"password" validate:"omitempty,min=8,max=72"`
	}
	if !a.decode(w, r, &req) {
		return
	}
	if err := a.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if req.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		user.PasswordHash = hash
	}

	if err := a.store.UpdateUser(r.Context(), user); err != nil {
		a.serverError(w, "update user", err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Admin handlers

func (a *API) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.store.ListUsers(r.Context())
	if err != nil {
		a.serverError(w, "list users", err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	respondJSON(w, http.StatusOK, users)
}

func (a *API) lockUser(w http.ResponseWriter, r *http.Request) {
	a.setLocked(w, r, true)
}

func (a *API) unlockUser(w http.ResponseWriter, r *http.Request) {
	a.setLocked(w, r, false)
}

func (a *API) setLocked(w http.ResponseWriter, r *http.Request, locked bool) {
	id := chi.URLParam(r, "id")

	// Can't lock yourself
	if locked && id == getUserFromContext(r).ID {
		respondError(w, http.StatusBadRequest, "Cannot lock yourself")
		return
	}

	user, err := a.store.GetUser(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	user.IsLocked = locked
	if err := a.store.UpdateUser(r.Context(), user); err != nil {
		a.serverError(w, "update user", err, zap.String("user_id", id))
		return
	}

	if locked {
		if err := a.store.DeleteUserSessions(r.Context(), id); err != nil {
			a.log.Warn("delete sessions of locked user", zap.String("user_id", id), zap.Error(err))
		}
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// Can't delete yourself
	if id == getUserFromContext(r).ID {
		respondError(w, http.StatusBadRequest, "Cannot delete yourself")
		return
	}

	if err := a.store.DeleteUser(r.Context(), id); err != nil {
		a.storeError(w, err, "User not found", zap.String("user_id", id))
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// JSON helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// decode reads a JSON body into v, answering 400 itself on failure.
func (a *API) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return false
	}
	return true
}

func (a *API) serverError(w http.ResponseWriter, op string, err error, fields ...zap.Field) {
	a.log.Error(op, append(fields, zap.Error(err))...)
	respondError(w, http.StatusInternalServerError, "Internal server error")
}

// storeError maps store sentinel errors to HTTP statuses.
func (a *API) storeError(w http.ResponseWriter, err error, notFoundMsg string, fields ...zap.Field) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, store.ErrForbidden):
		respondError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, store.ErrSlugTaken):
		respondError(w, http.StatusConflict, "Slug already taken")
	case errors.Is(err, store.ErrSlugInvalid):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		a.serverError(w, "store", err, fields...)
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request"
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min", "max":
		return field + " must satisfy " + fe.Tag() + "=" + fe.Param()
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "headershape":
		return field + " is not a known header shape"
	}
	return field + " is invalid"
}
