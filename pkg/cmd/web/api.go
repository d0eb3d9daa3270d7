package web

import (
	"encoding/json"
	"errors"
	"fmt"
	iofs "io/fs"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/igolaizola/musicprompt/pkg/account"
	"github.com/igolaizola/musicprompt/pkg/auth"
	"github.com/igolaizola/musicprompt/pkg/catalog"
	"github.com/igolaizola/musicprompt/pkg/checkout"
	"github.com/igolaizola/musicprompt/pkg/export"
	"github.com/igolaizola/musicprompt/pkg/maintenance"
	"github.com/igolaizola/musicprompt/pkg/notify"
	"github.com/igolaizola/musicprompt/pkg/prompt"
	"github.com/igolaizola/musicprompt/pkg/quota"
	"github.com/igolaizola/musicprompt/pkg/random"
	"github.com/igolaizola/musicprompt/pkg/storage"
	"github.com/igolaizola/musicprompt/pkg/suggest"
)

const stateCookie = "checkout_state"

// Server holds the services behind the http api.
type Server struct {
	Debug       bool
	Store       *storage.Store
	Verifier    *auth.Verifier
	Accounts    *account.Service
	Quota       *quota.Service
	Maintenance *maintenance.Service
	// Checkout is nil when payments aren't configured.
	Checkout  *checkout.Checkout
	Scheduler *notify.Scheduler

	Credentials map[string]string
	Static      iofs.FS
	Sentry      bool
}

func (s *Server) Handler() http.Handler {
	mux := chi.NewRouter()

	mux.Use(middleware.RealIP)
	mux.Use(middleware.Recoverer)
	if s.Sentry {
		mux.Use(sentryhttp.New(sentryhttp.Options{Repanic: true, Timeout: sentryFlushTimeout}).Handle)
	}
	mux.Use(middleware.Timeout(60 * time.Second))
	if s.Debug {
		mux.Use(middleware.Logger)
	}

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	resolve := s.Accounts.Ensure
	mux.Route("/api", func(r chi.Router) {
		r.Use(auth.Optional(s.Verifier, resolve))

		r.Get("/maintenance", s.getMaintenance)
		r.Get("/options", s.getOptions)

		r.Group(func(r chi.Router) {
			r.Use(s.Maintenance.Middleware)

			r.Post("/format", s.postFormat)
			r.Post("/suggestions", s.postSuggestions)
			r.Get("/random/track", s.getRandomTrack)
			r.Get("/random/ideas", s.getRandomIdeas)

			r.Group(func(r chi.Router) {
				r.Use(auth.Middleware(s.Verifier, resolve))

				r.Get("/me", s.getMe)

				r.Post("/prompts", s.postPrompt)
				r.Get("/prompts", s.listPrompts)
				r.Get("/prompts/{id}", s.getPrompt)
				r.Patch("/prompts/{id}", s.patchPrompt)
				r.Delete("/prompts/{id}", s.deletePrompt)

				r.Post("/checkout", s.postCheckout)
				r.Get("/checkout/success", s.getCheckoutSuccess)
				r.Get("/checkout/cancel", s.getCheckoutCancel)

				r.Post("/notifications", s.postNotification)
				r.Get("/notifications", s.listNotifications)
				r.Delete("/notifications/{id}", s.deleteNotification)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.Middleware(s.Verifier, resolve))
			r.Use(auth.RequireAdmin)

			r.Get("/users", s.listUsers)
			r.Put("/users/{id}/role", s.putUserRole)
			r.Put("/maintenance", s.putMaintenance)
			r.Get("/export", s.getExport)
		})
	})

	if s.Static != nil {
		static := http.StripPrefix("/", http.FileServer(http.FS(s.Static)))
		if len(s.Credentials) > 0 {
			static = middleware.BasicAuth("private", s.Credentials)(static)
		}
		mux.Get("/*", static.ServeHTTP)
	}
	return mux
}

func (s *Server) getMaintenance(w http.ResponseWriter, r *http.Request) {
	st, err := s.Maintenance.Get(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) getOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.All())
}

func (s *Server) postFormat(w http.ResponseWriter, r *http.Request) {
	var d prompt.Data
	if !readJSON(w, r, &d) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"prompt": prompt.Format(d)})
}

type suggestionsRequest struct {
	Genres []string `json:"genres"`
	Moods  []string `json:"moods"`
}

func (s *Server) postSuggestions(w http.ResponseWriter, r *http.Request) {
	var req suggestionsRequest
	if !readJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, suggest.Get(req.Genres, req.Moods))
}

type trackResponse struct {
	Data   prompt.Data `json:"data"`
	Prompt string      `json:"prompt"`
}

func (s *Server) getRandomTrack(w http.ResponseWriter, r *http.Request) {
	d := random.Track()
	writeJSON(w, http.StatusOK, trackResponse{Data: d, Prompt: prompt.Format(d)})
}

func (s *Server) getRandomIdeas(w http.ResponseWriter, r *http.Request) {
	count, err := strconv.Atoi(r.URL.Query().Get("count"))
	if err != nil {
		count = 1
	}
	writeJSON(w, http.StatusOK, random.Ideas(count))
}

type meResponse struct {
	ID      string        `json:"id"`
	Email   string        `json:"email"`
	Role    storage.Role  `json:"role"`
	Premium bool          `json:"premium"`
	Quota   *quota.Status `json:"quota"`
}

func (s *Server) getMe(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFrom(r.Context())
	st, err := s.Quota.Status(r.Context(), u)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meResponse{
		ID:      u.ID,
		Email:   u.Email,
		Role:    u.Role,
		Premium: u.Premium,
		Quota:   st,
	})
}

type Prompt struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	Title     string      `json:"title"`
	Data      prompt.Data `json:"data"`
	Prompt    string      `json:"prompt"`
	Favorite  bool        `json:"favorite"`
}

func toPrompt(p *storage.Prompt) *Prompt {
	var d prompt.Data
	if err := json.Unmarshal([]byte(p.Data), &d); err != nil {
		log.Printf("web: couldn't unmarshal prompt %s data: %v\n", p.ID, err)
	}
	return &Prompt{
		ID:        p.ID,
		CreatedAt: p.CreatedAt,
		Title:     p.Title,
		Data:      d,
		Prompt:    p.Text,
		Favorite:  p.Favorite,
	}
}

type User struct {
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Email     string       `json:"email"`
	Role      storage.Role `json:"role"`
	Premium   bool         `json:"premium"`
	PremiumAt *time.Time   `json:"premium_at,omitempty"`
	Disabled  bool         `json:"disabled"`
}

func toUser(u *storage.User) *User {
	return &User{
		ID:        u.ID,
		CreatedAt: u.CreatedAt,
		Email:     u.Email,
		Role:      u.Role,
		Premium:   u.Premium,
		PremiumAt: u.PremiumAt,
		Disabled:  u.Disabled,
	}
}

type Notification struct {
	ID     string                    `json:"id"`
	Title  string                    `json:"title"`
	Body   string                    `json:"body"`
	SendAt time.Time                 `json:"send_at"`
	Every  string                    `json:"every,omitempty"`
	State  storage.NotificationState `json:"state"`
}

func toNotification(n *storage.Notification) *Notification {
	v := &Notification{
		ID:     n.ID,
		Title:  n.Title,
		Body:   n.Body,
		SendAt: n.SendAt,
		State:  n.State,
	}
	if n.Every > 0 {
		v.Every = n.Every.String()
	}
	return v
}

type promptRequest struct {
	Title string      `json:"title"`
	Data  prompt.Data `json:"data"`
	Save  bool        `json:"save"`
}

type promptResponse struct {
	Prompt string        `json:"prompt"`
	Saved  *Prompt       `json:"saved,omitempty"`
	Quota  *quota.Status `json:"quota"`
}

func (s *Server) postPrompt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	u, _ := auth.UserFrom(ctx)
	var req promptRequest
	if !readJSON(w, r, &req) {
		return
	}
	st, err := s.Quota.Consume(ctx, u)
	if errors.Is(err, quota.ErrExceeded) {
		writeJSON(w, http.StatusTooManyRequests, map[string]any{
			"error": "daily limit reached, upgrade to premium for unlimited prompts",
			"quota": st,
		})
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}
	resp := promptResponse{Prompt: prompt.Format(req.Data), Quota: st}
	if req.Save {
		js, err := json.Marshal(req.Data)
		if err != nil {
			serverError(w, err)
			return
		}
		p := &storage.Prompt{
			UserID: u.ID,
			Title:  strings.TrimSpace(req.Title),
			Data:   string(js),
			Text:   resp.Prompt,
		}
		if p.Title == "" {
			p.Title = req.Data.Subject
		}
		if err := s.Store.SetPrompt(ctx, p); err != nil {
			serverError(w, err)
			return
		}
		resp.Saved = toPrompt(p)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listPrompts(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFrom(r.Context())
	page, size := pagination(r)
	filters := []storage.Filter{storage.Where("user_id = ?", u.ID)}
	if v := r.URL.Query().Get("favorite"); v != "" {
		filters = append(filters, storage.Where("favorite = ?", v == "true"))
	}
	ps, err := s.Store.ListPrompts(r.Context(), page, size, "id desc", filters...)
	if err != nil {
		serverError(w, err)
		return
	}
	out := make([]*Prompt, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPrompt(p))
	}
	writeJSON(w, http.StatusOK, out)
}

// ownPrompt loads the prompt in the url if it belongs to the user. Prompts of
// other users are reported as not found.
func (s *Server) ownPrompt(w http.ResponseWriter, r *http.Request) (*storage.Prompt, bool) {
	u, _ := auth.UserFrom(r.Context())
	id := chi.URLParam(r, "id")
	p, err := s.Store.GetPrompt(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && p.UserID != u.ID) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("prompt %s not found", id))
		return nil, false
	}
	if err != nil {
		serverError(w, err)
		return nil, false
	}
	return p, true
}

func (s *Server) getPrompt(w http.ResponseWriter, r *http.Request) {
	p, ok := s.ownPrompt(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toPrompt(p))
}

type patchPromptRequest struct {
	Title    *string      `json:"title"`
	Favorite *bool        `json:"favorite"`
	Data     *prompt.Data `json:"data"`
}

func (s *Server) patchPrompt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := s.ownPrompt(w, r)
	if !ok {
		return
	}
	var req patchPromptRequest
	if !readJSON(w, r, &req) {
		return
	}
	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Favorite != nil {
		fields["favorite"] = *req.Favorite
	}
	if req.Data != nil {
		js, err := json.Marshal(req.Data)
		if err != nil {
			serverError(w, err)
			return
		}
		fields["data"] = string(js)
		fields["text"] = prompt.Format(*req.Data)
	}
	if len(fields) == 0 {
		writeError(w, http.StatusBadRequest, "nothing to update")
		return
	}
	if err := s.Store.UpdatePrompt(ctx, p.ID, fields); err != nil {
		serverError(w, err)
		return
	}
	p, err := s.Store.GetPrompt(ctx, p.ID)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPrompt(p))
}

func (s *Server) deletePrompt(w http.ResponseWriter, r *http.Request) {
	p, ok := s.ownPrompt(w, r)
	if !ok {
		return
	}
	if err := s.Store.DeletePrompt(r.Context(), p.ID); err != nil {
		serverError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) postCheckout(w http.ResponseWriter, r *http.Request) {
	if s.Checkout == nil {
		writeError(w, http.StatusNotImplemented, "payments are not configured")
		return
	}
	u, _ := auth.UserFrom(r.Context())
	if u.Premium {
		writeError(w, http.StatusConflict, "already premium")
		return
	}
	sess, err := s.Checkout.Start(u.ID, u.Email)
	if err != nil {
		serverError(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    sess.State,
		Path:     "/api/checkout",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, sess)
}

// getCheckoutSuccess is the redirect target of the payment link. The state
// comes from the cookie set by postCheckout and session_id from the provider.
func (s *Server) getCheckoutSuccess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if s.Checkout == nil {
		writeError(w, http.StatusNotImplemented, "payments are not configured")
		return
	}
	u, _ := auth.UserFrom(ctx)
	var state string
	if c, err := r.Cookie(stateCookie); err == nil {
		state = c.Value
	}
	err := s.Checkout.Complete(ctx, u.ID, state, r.URL.Query().Get("session_id"))
	switch {
	case errors.Is(err, checkout.ErrInvalidState):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, checkout.ErrNotPaid):
		writeError(w, http.StatusPaymentRequired, err.Error())
		return
	case errors.Is(err, checkout.ErrRedeemed):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		log.Printf("web: couldn't complete checkout for %s: %v\n", u.ID, err)
		writeError(w, http.StatusBadGateway, "couldn't verify the payment")
		return
	}
	if err := s.Accounts.SetPremium(ctx, u.ID, time.Now()); err != nil {
		serverError(w, err)
		return
	}
	if _, err := s.Scheduler.Send(ctx, u.ID, "Welcome to premium", "Thanks for upgrading! Your prompts are now unlimited."); err != nil {
		log.Printf("web: couldn't schedule welcome notification for %s: %v\n", u.ID, err)
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Path: "/api/checkout", MaxAge: -1})
	u, err = s.Accounts.Get(ctx, u.ID)
	if err != nil {
		serverError(w, err)
		return
	}
	st, err := s.Quota.Status(ctx, u)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"premium": true, "quota": st})
}

func (s *Server) getCheckoutCancel(w http.ResponseWriter, r *http.Request) {
	if s.Checkout == nil {
		writeError(w, http.StatusNotImplemented, "payments are not configured")
		return
	}
	u, _ := auth.UserFrom(r.Context())
	s.Checkout.Cancel(u.ID)
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Path: "/api/checkout", MaxAge: -1})
	writeJSON(w, http.StatusOK, map[string]bool{"premium": u.Premium})
}

// notificationRequest uses duration strings such as "90m" for after and
// every.
type notificationRequest struct {
	Title string    `json:"title"`
	Body  string    `json:"body"`
	At    time.Time `json:"at"`
	After string    `json:"after"`
	Every string    `json:"every"`
}

func (req notificationRequest) message() (notify.Message, error) {
	msg := notify.Message{Title: req.Title, Body: req.Body}
	msg.Trigger.At = req.At
	var err error
	if req.After != "" {
		if msg.Trigger.After, err = time.ParseDuration(req.After); err != nil {
			return msg, fmt.Errorf("invalid after %q", req.After)
		}
	}
	if req.Every != "" {
		if msg.Trigger.Every, err = time.ParseDuration(req.Every); err != nil {
			return msg, fmt.Errorf("invalid every %q", req.Every)
		}
	}
	return msg, nil
}

func (s *Server) postNotification(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFrom(r.Context())
	var req notificationRequest
	if !readJSON(w, r, &req) {
		return
	}
	msg, err := req.message()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	n, err := s.Scheduler.Schedule(r.Context(), u.ID, msg)
	if errors.Is(err, notify.ErrInvalid) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toNotification(n))
}

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFrom(r.Context())
	page, size := pagination(r)
	ns, err := s.Scheduler.Pending(r.Context(), u.ID, page, size)
	if err != nil {
		serverError(w, err)
		return
	}
	out := make([]*Notification, 0, len(ns))
	for _, n := range ns {
		out = append(out, toNotification(n))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteNotification(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.UserFrom(r.Context())
	id := chi.URLParam(r, "id")
	err := s.Scheduler.Cancel(r.Context(), u.ID, id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, fmt.Sprintf("notification %s not found", id))
	case errors.Is(err, notify.ErrInvalid):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil:
		serverError(w, err)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	page, size := pagination(r)
	users, err := s.Accounts.List(r.Context(), page, size, r.URL.Query().Get("role"))
	if err != nil {
		serverError(w, err)
		return
	}
	out := make([]*User, 0, len(users))
	for _, u := range users {
		out = append(out, toUser(u))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) putUserRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		Role string `json:"role"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	role, ok := storage.ParseRole(req.Role)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid role %q", req.Role))
		return
	}
	err := s.Accounts.SetRole(r.Context(), id, role)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("user %s not found", id))
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}
	u, err := s.Accounts.Get(r.Context(), id)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUser(u))
}

func (s *Server) putMaintenance(w http.ResponseWriter, r *http.Request) {
	var st maintenance.State
	if !readJSON(w, r, &st) {
		return
	}
	if err := s.Maintenance.Set(r.Context(), st.Enabled, st.Message); err != nil {
		serverError(w, err)
		return
	}
	s.getMaintenance(w, r)
}

func (s *Server) getExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "json" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format))
		return
	}
	ps, err := export.Prompts(r.Context(), s.Store, r.URL.Query().Get("user"))
	if err != nil {
		serverError(w, err)
		return
	}
	w.Header().Set("Content-Type", export.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=prompts.%s", format))
	if err := export.Write(w, format, ps); err != nil {
		log.Printf("web: couldn't write export: %v\n", err)
	}
}

func pagination(r *http.Request) (int, int) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil || size < 1 || size > 100 {
		size = 100
	}
	return page, size
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("couldn't decode request: %v", err))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("web: couldn't encode response:", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func serverError(w http.ResponseWriter, err error) {
	log.Println("web:", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}
