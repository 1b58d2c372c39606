package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/John-Robertt/mdapi/internal/site"
)

const welcomeText = "Welcome to moviedrive api! 🎉"

type handlers struct {
	catalog Catalog
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handlers) welcome(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(welcomeText))
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}

func (h *handlers) home(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.Home(r.Context())
	h.respond(w, r, page, err)
}

func (h *handlers) search(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.Search(r.Context(), r.URL.Query().Get("q"))
	h.respond(w, r, page, err)
}

func (h *handlers) movies(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.Movies(r.Context(), r.URL.Query().Get("p"))
	h.respond(w, r, page, err)
}

func (h *handlers) film(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.Film(r.Context(), r.URL.Query().Get("id"))
	h.respond(w, r, page, err)
}

func (h *handlers) series(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sq := site.SeriesQuery{ID: q.Get("id"), Season: q.Get("evad")}

	if raw := strings.TrimSpace(q.Get("episode")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "episode 必须是正整数")
			return
		}
		sq.Episode = n
	}

	page, err := h.catalog.Series(r.Context(), sq)
	h.respond(w, r, page, err)
}

func (h *handlers) respond(w http.ResponseWriter, r *http.Request, v any, err error) {
	if err != nil {
		status := statusFor(err)
		log.FromContext(r.Context()).Warn("请求失败", "status", status, "err", err)
		writeError(w, status, err.Error())
		return
	}
	if err := writeJSON(w, http.StatusOK, v); err != nil {
		log.FromContext(r.Context()).Error("响应编码失败", "err", err)
	}
}

// statusFor 把请求层错误映射为 HTTP 状态码：站点侧的失败（抓取或播放源解析）都是 502。
func statusFor(err error) int {
	var se *site.Error
	if errors.As(err, &se) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// writeJSON 先完整编码再写状态码；编码失败时改为 500，不会留下空的 200 响应。
func writeJSON(w http.ResponseWriter, status int, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"响应编码失败"}` + "\n"))
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

func writeError(w http.ResponseWriter, status int, msg string) {
	_ = writeJSON(w, status, errorResponse{Error: msg})
}
