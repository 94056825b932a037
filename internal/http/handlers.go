package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"budgetry/internal/core"
	"budgetry/internal/report"
	"budgetry/internal/services"
	"budgetry/internal/storage"
)

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Message  string `json:"message"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

type transactionResponse struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// userIDParam reads userId from the query string, defaulting to 1.
func userIDParam(r *http.Request) int64 {
	v := strings.TrimSpace(r.URL.Query().Get("userId"))
	if v == "" {
		return 1
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id < 1 {
		return 1
	}
	return id
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}

	err := s.records.Signup(r.Context(), req.Username, req.Email, req.Password)
	if errors.Is(err, storage.ErrDuplicateUser) {
		writeMessage(w, http.StatusBadRequest, "Username or email already exists")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Signup failed", "error", err, "username", req.Username)
		writeMessage(w, http.StatusInternalServerError, "Error creating account")
		return
	}
	writeMessage(w, http.StatusCreated, "Account created successfully! Please login.")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req struct {
		UserInput string `json:"userInput"`
		Password  string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Username/email and password are required")
		return
	}
	if req.UserInput == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Username/email and password are required")
		return
	}

	user, err := s.records.Login(r.Context(), req.UserInput, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Login failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Message:  "Login successful!",
		UserID:   user.ID,
		Username: user.Username,
	})
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID := userIDParam(r)
	key := strconv.FormatInt(userID, 10)

	rows, ok := s.txCache.Get(key)
	if !ok {
		var err error
		rows, err = s.records.Transactions(r.Context(), userID)
		if err != nil {
			slog.ErrorContext(r.Context(), "List transactions failed", "error", err, "user_id", userID)
			writeMessage(w, http.StatusInternalServerError, "Error fetching transactions")
			return
		}
		s.txCache.Set(key, rows)
	}

	out := make([]transactionResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, transactionResponse{
			ID:          row.ID,
			UserID:      row.UserID,
			Type:        row.Type,
			Amount:      float64(row.AmountCents) / 100,
			Category:    row.Category,
			Description: row.Description,
			Date:        row.Date,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req struct {
		UserID      int64      `json:"user_id"`
		Type        string     `json:"type"`
		Amount      core.Money `json:"amount"`
		Category    string     `json:"category"`
		Description string     `json:"description"`
		Date        string     `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Type == "" || req.Category == "" {
		writeMessage(w, http.StatusBadRequest, "Type and category are required")
		return
	}
	if req.UserID < 1 {
		req.UserID = 1
	}

	_, err := s.records.AddTransaction(r.Context(), storage.TransactionRow{
		UserID:      req.UserID,
		Type:        req.Type,
		AmountCents: req.Amount.Cents,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "Insert transaction failed", "error", err, "user_id", req.UserID)
		writeMessage(w, http.StatusInternalServerError, "Error")
		return
	}

	s.txCache.Delete(strconv.FormatInt(req.UserID, 10))
	writeMessage(w, http.StatusOK, "Inserted")
}

func (s *Server) handleUploadTransactions(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req struct {
		UserID  int64  `json:"userId"`
		CSVData string `json:"csvData"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID < 1 {
		req.UserID = 1
	}

	count, err := s.records.ImportCSV(r.Context(), req.UserID, req.CSVData)
	if err != nil {
		slog.ErrorContext(r.Context(), "CSV upload failed", "error", err, "user_id", req.UserID)
		writeMessage(w, http.StatusInternalServerError, "Error uploading transactions")
		return
	}

	s.txCache.Delete(strconv.FormatInt(req.UserID, 10))
	slog.InfoContext(r.Context(), "CSV upload complete", "user_id", req.UserID, "rows", count)
	writeMessage(w, http.StatusOK, "Transactions uploaded successfully")
}

func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	userID := userIDParam(r)

	doc, err := s.records.Report(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Report generation failed", "error", err, "user_id", userID)
		writeMessage(w, http.StatusInternalServerError, "Error fetching transactions")
		return
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

// handleEvents streams dataUpdated notifications over server-sent
// events until the client disconnects.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events, cancel := s.hub.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-events:
			if _, err := w.Write([]byte("event: " + ev.Name + "\ndata: ")); err != nil {
				return
			}
			if _, err := w.Write(append(ev.marshal(), '\n', '\n')); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
