package test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/brpaz/echozap"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const apiServerSecret = "glucomate-test-secret"

// RecordedRequest captures the parts of a request that tests assert on.
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
}

type SectionRejection struct {
	Status  int
	Message string
}

type apiUser struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type chatMessage struct {
	ID     string `json:"id"`
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

type chatSession struct {
	ID        string
	StartedAt time.Time
	Ended     bool
	Messages  []chatMessage
}

// ApiServer is an in-memory stand-in for the remote service. It keeps
// profile sections per user so the update-then-create fallback can be
// exercised over real HTTP, and records every request for assertions.
type ApiServer struct {
	Server *httptest.Server

	mu         sync.Mutex
	users      map[string]*apiUser
	sections   map[string]map[string]map[string]interface{}
	rejections map[string]SectionRejection
	sessions   map[string]*chatSession
	expired    bool
	requests   []RecordedRequest
}

func NewApiServer() *ApiServer {
	s := &ApiServer{
		users:      map[string]*apiUser{},
		sections:   map[string]map[string]map[string]interface{}{},
		rejections: map[string]SectionRejection{},
		sessions:   map[string]*chatSession{},
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echozap.ZapLogger(zap.NewNop()))
	e.Use(s.record)

	e.POST("/api/v1/auth/register", s.register)
	e.POST("/api/v1/auth/login", s.login)
	e.GET("/api/v1/auth/verify", s.verify)
	e.POST("/api/v1/auth/forgot-password", s.forgotPassword)
	e.POST("/api/v1/auth/reset-password", s.resetPassword)

	e.GET("/api/v1/medical-profile/overview", s.overview)
	e.PUT("/api/v1/medical-profile/:kind/:userId", s.updateSection)
	e.POST("/api/v1/medical-profile/:kind", s.createSection)

	e.GET("/api/v1/chat/status", s.chatStatus)
	e.POST("/api/v1/chat/message", s.chatMessage)
	e.GET("/api/v1/chat/history", s.chatHistory)
	e.GET("/api/v1/chat/history/:id", s.chatMessages)
	e.PUT("/api/v1/chat/session/:id/end", s.chatEnd)

	s.Server = httptest.NewServer(e)
	return s
}

func (s *ApiServer) URL() string {
	return s.Server.URL
}

func (s *ApiServer) Close() {
	s.Server.Close()
}

// RegisterUser seeds an account without going through the signup flow.
func (s *ApiServer) RegisterUser(firstName, lastName, email, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := &apiUser{
		ID:        uuid.NewString(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
	}
	s.users[email] = user
	return user.ID
}

// TokenFor mints a token the way the login endpoint does.
func (s *ApiServer) TokenFor(userID, email string) string {
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(apiServerSecret))
	if err != nil {
		panic(err)
	}
	return token
}

// SeedSection stores a section record so subsequent updates succeed.
func (s *ApiServer) SeedSection(userID, kind string, payload map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sections[userID] == nil {
		s.sections[userID] = map[string]map[string]interface{}{}
	}
	s.sections[userID][kind] = payload
}

func (s *ApiServer) Section(userID, kind string) map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sections[userID][kind]
}

// RejectSection makes every save of the given kind fail with the given
// status until the rejection is removed.
func (s *ApiServer) RejectSection(kind string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejections[kind] = SectionRejection{Status: status, Message: message}
}

func (s *ApiServer) AcceptSection(kind string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rejections, kind)
}

// ExpireSessions makes every authenticated endpoint answer 401.
func (s *ApiServer) ExpireSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expired = true
}

func (s *ApiServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	requests := make([]RecordedRequest, len(s.requests))
	copy(requests, s.requests)
	return requests
}

func (s *ApiServer) CountRequests(method, pathPrefix string) int {
	count := 0
	for _, request := range s.Requests() {
		if request.Method == method && strings.HasPrefix(request.Path, pathPrefix) {
			count++
		}
	}
	return count
}

func (s *ApiServer) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:        c.Request().Method,
			Path:          c.Request().URL.Path,
			Authorization: c.Request().Header.Get(echo.HeaderAuthorization),
		})
		s.mu.Unlock()
		return next(c)
	}
}

func envelope(c echo.Context, status int, success bool, message string, data interface{}) error {
	body := map[string]interface{}{
		"success": success,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	return c.JSON(status, body)
}

// authenticate validates the bearer token and resolves the subject.
func (s *ApiServer) authenticate(c echo.Context) (string, error) {
	s.mu.Lock()
	expired := s.expired
	s.mu.Unlock()

	header := c.Request().Header.Get(echo.HeaderAuthorization)
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || expired {
		return "", envelope(c, http.StatusUnauthorized, false, "Session expired", nil)
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(apiServerSecret), nil
	})
	if err != nil {
		return "", envelope(c, http.StatusUnauthorized, false, "Invalid token", nil)
	}

	sub, _ := claims["sub"].(string)
	return sub, nil
}

func (s *ApiServer) register(c echo.Context) error {
	body := struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}{}
	if err := c.Bind(&body); err != nil {
		return envelope(c, http.StatusBadRequest, false, "Invalid request", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[body.Email]; exists {
		return envelope(c, http.StatusConflict, false, "Email already registered", nil)
	}
	s.users[body.Email] = &apiUser{
		ID:        uuid.NewString(),
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
		Password:  body.Password,
	}

	return envelope(c, http.StatusCreated, true, "Registration successful. Please check your email to verify your account.", nil)
}

func (s *ApiServer) login(c echo.Context) error {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}
	if err := c.Bind(&body); err != nil {
		return envelope(c, http.StatusBadRequest, false, "Invalid request", nil)
	}

	s.mu.Lock()
	user, exists := s.users[body.Email]
	s.mu.Unlock()
	if !exists || user.Password != body.Password {
		return envelope(c, http.StatusUnauthorized, false, "Invalid email or password", nil)
	}

	return envelope(c, http.StatusOK, true, "Login successful", map[string]interface{}{
		"access_token": s.TokenFor(user.ID, user.Email),
		"user": map[string]interface{}{
			"id":        user.ID,
			"firstName": user.FirstName,
			"lastName":  user.LastName,
			"email":     user.Email,
		},
	})
}

func (s *ApiServer) verify(c echo.Context) error {
	if c.QueryParam("token") == "" {
		return envelope(c, http.StatusBadRequest, false, "Verification token is missing", nil)
	}
	return envelope(c, http.StatusOK, true, "Email verified successfully", nil)
}

func (s *ApiServer) forgotPassword(c echo.Context) error {
	return envelope(c, http.StatusOK, true, "If the email exists, a reset link has been sent", nil)
}

func (s *ApiServer) resetPassword(c echo.Context) error {
	body := struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}{}
	if err := c.Bind(&body); err != nil || body.Token == "" {
		return envelope(c, http.StatusBadRequest, false, "Invalid or expired reset token", nil)
	}
	return envelope(c, http.StatusOK, true, "Password has been reset", nil)
}

func (s *ApiServer) overview(c echo.Context) error {
	userID, err := s.authenticate(c)
	if userID == "" {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var user *apiUser
	for _, candidate := range s.users {
		if candidate.ID == userID {
			user = candidate
		}
	}

	data := map[string]interface{}{}
	if user != nil {
		data["user"] = map[string]interface{}{
			"id":        user.ID,
			"firstName": user.FirstName,
			"lastName":  user.LastName,
			"email":     user.Email,
		}
	}
	keys := map[string]string{
		"personalinfo":    "personalInfo",
		"medicalhistory":  "medicalHistory",
		"lifestylehabits": "lifestyle",
		"monitoringinfo":  "monitoring",
	}
	for kind, key := range keys {
		if section, exists := s.sections[userID][kind]; exists {
			data[key] = section
		}
	}

	return envelope(c, http.StatusOK, true, "", data)
}

func (s *ApiServer) updateSection(c echo.Context) error {
	userID, err := s.authenticate(c)
	if userID == "" {
		return err
	}

	kind := c.Param("kind")
	target := c.Param("userId")

	s.mu.Lock()
	rejection, rejected := s.rejections[kind]
	_, exists := s.sections[target][kind]
	s.mu.Unlock()

	if rejected {
		return envelope(c, rejection.Status, false, rejection.Message, nil)
	}
	if !exists {
		return envelope(c, http.StatusNotFound, false, fmt.Sprintf("No %s record found", kind), nil)
	}

	payload := map[string]interface{}{}
	if err := c.Bind(&payload); err != nil {
		return envelope(c, http.StatusBadRequest, false, "Invalid request", nil)
	}

	s.mu.Lock()
	for name, value := range payload {
		s.sections[target][kind][name] = value
	}
	s.mu.Unlock()

	return envelope(c, http.StatusOK, true, "Profile updated", nil)
}

func (s *ApiServer) createSection(c echo.Context) error {
	userID, err := s.authenticate(c)
	if userID == "" {
		return err
	}

	kind := c.Param("kind")

	s.mu.Lock()
	rejection, rejected := s.rejections[kind]
	s.mu.Unlock()
	if rejected {
		return envelope(c, rejection.Status, false, rejection.Message, nil)
	}

	payload := map[string]interface{}{}
	if err := c.Bind(&payload); err != nil {
		return envelope(c, http.StatusBadRequest, false, "Invalid request", nil)
	}

	s.mu.Lock()
	if s.sections[userID] == nil {
		s.sections[userID] = map[string]map[string]interface{}{}
	}
	s.sections[userID][kind] = payload
	s.mu.Unlock()

	return envelope(c, http.StatusCreated, true, "Profile created", nil)
}

func (s *ApiServer) chatStatus(c echo.Context) error {
	return envelope(c, http.StatusOK, true, "", map[string]interface{}{
		"online": true,
		"model":  "glucomate-1",
	})
}

func (s *ApiServer) chatMessage(c echo.Context) error {
	userID, err := s.authenticate(c)
	if userID == "" {
		return err
	}

	body := struct {
		Message   string `json:"message"`
		SessionID string `json:"session_id"`
		Language  string `json:"language"`
	}{}
	if err := c.Bind(&body); err != nil {
		return envelope(c, http.StatusBadRequest, false, "Invalid request", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[body.SessionID]
	if !exists {
		session = &chatSession{ID: uuid.NewString(), StartedAt: time.Now()}
		s.sessions[session.ID] = session
	}

	reply := chatMessage{ID: uuid.NewString(), Sender: "assistant", Text: "echo: " + body.Message}
	session.Messages = append(session.Messages,
		chatMessage{ID: uuid.NewString(), Sender: "user", Text: body.Message},
		reply,
	)

	return envelope(c, http.StatusOK, true, "", map[string]interface{}{
		"session_id": session.ID,
		"bot_response": map[string]interface{}{
			"id":   reply.ID,
			"text": reply.Text,
		},
	})
}

func (s *ApiServer) chatHistory(c echo.Context) error {
	userID, err := s.authenticate(c)
	if userID == "" {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := make([]map[string]interface{}, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, map[string]interface{}{
			"session_id": session.ID,
			"started_at": session.StartedAt.Format(time.RFC3339),
			"ended":      session.Ended,
		})
	}

	return envelope(c, http.StatusOK, true, "", map[string]interface{}{"sessions": sessions})
}

func (s *ApiServer) chatMessages(c echo.Context) error {
	userID, err := s.authenticate(c)
	if userID == "" {
		return err
	}

	s.mu.Lock()
	session, exists := s.sessions[c.Param("id")]
	s.mu.Unlock()
	if !exists {
		return envelope(c, http.StatusNotFound, false, "Session not found", nil)
	}

	return envelope(c, http.StatusOK, true, "", map[string]interface{}{"messages": session.Messages})
}

func (s *ApiServer) chatEnd(c echo.Context) error {
	userID, err := s.authenticate(c)
	if userID == "" {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session, exists := s.sessions[c.Param("id")]
	if !exists {
		return envelope(c, http.StatusNotFound, false, "Session not found", nil)
	}
	session.Ended = true

	return envelope(c, http.StatusOK, true, "Session ended", nil)
}
