package handler

import (
	"context"
	"net/http"

	"painel-proxy/internal/domain"
	"painel-proxy/internal/logger"
	"painel-proxy/internal/service"
)

type Searcher interface {
	Search(ctx context.Context, q string, sites []string) (*service.SearchResult, error)
}

type SearchHandler struct {
	searchService Searcher
	log           *logger.Logger
}

func NewSearchHandler(searchService Searcher, log *logger.Logger) *SearchHandler {
	if log == nil {
		log = logger.Discard()
	}
	return &SearchHandler{searchService: searchService, log: log}
}

type searchResponse struct {
	OK      bool              `json:"ok"`
	Results []domain.NewsItem `json:"results"`
	RSSURL  string            `json:"rssUrl"`
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sites := service.SplitSites(query.Get("sites"))

	result, err := h.searchService.Search(r.Context(), query.Get("q"), sites)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		OK:      true,
		Results: result.Items,
		RSSURL:  result.RSSURL,
	})
}
