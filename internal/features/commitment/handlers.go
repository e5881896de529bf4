// Package commitment — handlers.go обрабатывает HTTP-запросы сдачи коммитов.
package commitment

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"papyr.app/backend/internal/common"
	"papyr.app/backend/internal/server/middleware"
)

// Handler обрабатывает HTTP-запросы коммитов.
type Handler struct {
	service *Service
}

// NewHandler создаёт новый обработчик коммитов.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetWindow — GET /api/window. Публичный: клиент рисует обратный отсчёт
// до «часа волка» ещё до логина.
func (h *Handler) GetWindow(w http.ResponseWriter, r *http.Request) {
	common.WriteJSON(w, http.StatusOK, h.service.Window())
}

// commitmentView — представление коммита в API.
type commitmentView struct {
	UID           string    `json:"uid"`
	Date          string    `json:"date"`
	PhotoURL      string    `json:"photo_url"`
	Goals         []string  `json:"goals"`
	JokerConsumed bool      `json:"joker_consumed"`
	StreakAfter   int       `json:"streak_after"`
	CreatedAt     time.Time `json:"created_at"`
}

func viewOf(c *Commitment) commitmentView {
	return commitmentView{
		UID:           c.UID.String(),
		Date:          c.CommitmentDate.Format("2006-01-02"),
		PhotoURL:      c.PhotoURL,
		Goals:         c.Goals,
		JokerConsumed: c.JokerConsumed,
		StreakAfter:   c.StreakAfter,
		CreatedAt:     c.CreatedAt,
	}
}

// submitResponse — ответ на принятый коммит.
type submitResponse struct {
	Commitment    commitmentView `json:"commitment"`
	NewStreak     int            `json:"new_streak"`
	NewJokers     int            `json:"new_jokers"`
	JokerConsumed bool           `json:"joker_consumed"`
	JokerAwarded  bool           `json:"joker_awarded"`
	Milestone     *Milestone     `json:"milestone,omitempty"`
}

// PostCommitment — POST /api/commitments. Multipart: поле "photo" (файл)
// плюс повторяющиеся поля "goals". Отказ гейта — это 4xx с машинным кодом,
// а не ошибка сервера.
func (h *Handler) PostCommitment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	// Лимитируем размер тела до того, как начнём читать
	r.Body = http.MaxBytesReader(w, r.Body, h.service.cfg.PhotoMaxBytes+64*1024)
	if err := r.ParseMultipartForm(h.service.cfg.PhotoMaxBytes); err != nil {
		common.WriteDomainError(w, common.ErrPhotoTooLarge)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		common.WriteDomainError(w, common.ErrPhotoMissing)
		return
	}
	defer file.Close()

	if header.Size > h.service.cfg.PhotoMaxBytes {
		common.WriteDomainError(w, common.ErrPhotoTooLarge)
		return
	}

	photo, err := io.ReadAll(file)
	if err != nil {
		common.WriteDomainError(w, err)
		return
	}

	// Пустые цели отбрасываем сразу, чтобы в архив не попадал мусор
	var goals []string
	for _, g := range r.MultipartForm.Value["goals"] {
		g = strings.TrimSpace(g)
		if g != "" {
			goals = append(goals, g)
		}
	}

	res, err := h.service.Submit(r.Context(), userID, goals, header.Filename, photo)
	if err != nil {
		common.WriteDomainError(w, err)
		return
	}

	if !res.Gate.Accepted {
		h.writeRejection(w, res.Gate)
		return
	}

	common.WriteJSON(w, http.StatusCreated, submitResponse{
		Commitment:    viewOf(res.Commitment),
		NewStreak:     res.Gate.Ledger.NewStreak,
		NewJokers:     res.Gate.Ledger.NewJokers,
		JokerConsumed: res.Gate.Ledger.JokerConsumed,
		JokerAwarded:  res.Gate.Ledger.JokerAwarded,
		Milestone:     res.Milestone,
	})
}

// writeRejection отдаёт отказ гейта с подходящим статусом и подсказкой.
func (h *Handler) writeRejection(w http.ResponseWriter, gate GateResult) {
	switch gate.Reason {
	case ReasonPaywallRequired:
		common.WriteError(w, http.StatusPaymentRequired, string(gate.Reason),
			"бесплатный лимит исчерпан — разблокируй архив, чтобы продолжить")
	case ReasonWindowClosed:
		common.WriteError(w, http.StatusForbidden, string(gate.Reason),
			fmt.Sprintf("сейчас не час волка — окно открыто с %02d:00 до %02d:00",
				h.service.cfg.WindowOpenHour, h.service.cfg.WindowCloseHour))
	case ReasonAlreadyCommitted:
		common.WriteError(w, http.StatusConflict, string(gate.Reason),
			"сегодняшняя записка уже принята, возвращайся завтра")
	default:
		common.WriteError(w, http.StatusBadRequest, string(gate.Reason), "")
	}
}

// GetArchive — GET /api/commitments. Без оплаты отдаём не больше
// бесплатного лимита записей.
func (h *Handler) GetArchive(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	list, err := h.service.Archive(r.Context(), userID)
	if err != nil {
		common.WriteDomainError(w, err)
		return
	}

	views := make([]commitmentView, 0, len(list))
	for _, c := range list {
		views = append(views, viewOf(c))
	}
	common.WriteJSON(w, http.StatusOK, map[string]any{"commitments": views})
}

// progressView — представление прогресса в API.
type progressView struct {
	CurrentStreak      int    `json:"current_streak"`
	LongestStreak      int    `json:"longest_streak"`
	Jokers             int    `json:"jokers"`
	LastCommitmentDate string `json:"last_commitment_date,omitempty"`
	TotalCommitments   int    `json:"total_commitments"`
	HasPaid            bool   `json:"has_paid"`
}

// ProgressView строит представление прогресса (используется и в /api/me).
func ProgressView(p *Progress) any {
	v := progressView{
		CurrentStreak:    p.CurrentStreak,
		LongestStreak:    p.LongestStreak,
		Jokers:           p.Jokers,
		TotalCommitments: p.TotalCommitments,
		HasPaid:          p.HasPaid,
	}
	if p.LastCommitmentDate != nil {
		v.LastCommitmentDate = p.LastCommitmentDate.Format("2006-01-02")
	}
	return v
}

// GetProgress — GET /api/progress.
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	p, err := h.service.Progress(r.Context(), userID)
	if err != nil {
		common.WriteDomainError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, ProgressView(p))
}
