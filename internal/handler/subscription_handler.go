package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"opmlkit/internal/model"
	"opmlkit/internal/service"
	"opmlkit/pkg/logger"
)

type SubscriptionHandler struct {
	subs    service.SubscriptionService
	refresh service.RefreshService
}

type folderResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type subscriptionResponse struct {
	ID              int64   `json:"id"`
	FolderID        *int64  `json:"folderId,omitempty"`
	Title           string  `json:"title"`
	URL             string  `json:"url"`
	SiteURL         *string `json:"siteUrl,omitempty"`
	Description     *string `json:"description,omitempty"`
	LastRefreshedAt *string `json:"lastRefreshedAt,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

type subscriptionListResponse struct {
	Folders       []folderResponse       `json:"folders"`
	Subscriptions []subscriptionResponse `json:"subscriptions"`
}

type refreshStartedResponse struct {
	Status string `json:"status"`
}

func NewSubscriptionHandler(subs service.SubscriptionService, refresh service.RefreshService) *SubscriptionHandler {
	return &SubscriptionHandler{subs: subs, refresh: refresh}
}

func (h *SubscriptionHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/subscriptions", h.List)
	g.DELETE("/subscriptions/:id", h.Delete)
	g.POST("/refresh", h.Refresh)
}

func (h *SubscriptionHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	folders, err := h.subs.ListFolders(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}
	subs, err := h.subs.List(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, subscriptionListResponse{
		Folders:       lo.Map(folders, toFolderResponse),
		Subscriptions: lo.Map(subs, toSubscriptionResponse),
	})
}

func (h *SubscriptionHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid request")
	}
	if err := h.subs.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Refresh starts a background refresh of every subscription and returns
// immediately. A second request while one is running gets a conflict.
func (h *SubscriptionHandler) Refresh(c echo.Context) error {
	if h.refresh.IsRefreshing() {
		return writeError(c, http.StatusConflict, "refresh already in progress")
	}

	go func() {
		if err := h.refresh.RefreshAll(context.Background()); err != nil {
			logger.Error("background refresh", "module", "handler", "action", "refresh", "resource", "subscription", "result", "failed", "error", err)
		}
	}()

	return c.JSON(http.StatusAccepted, refreshStartedResponse{Status: "started"})
}

func toFolderResponse(folder model.Folder, _ int) folderResponse {
	return folderResponse{
		ID:        folder.ID,
		Name:      folder.Name,
		CreatedAt: folder.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: folder.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toSubscriptionResponse(sub model.Subscription, _ int) subscriptionResponse {
	resp := subscriptionResponse{
		ID:          sub.ID,
		FolderID:    sub.FolderID,
		Title:       sub.Title,
		URL:         sub.URL,
		SiteURL:     sub.SiteURL,
		Description: sub.Description,
		CreatedAt:   sub.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   sub.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if sub.LastRefreshedAt != nil {
		formatted := sub.LastRefreshedAt.UTC().Format(time.RFC3339)
		resp.LastRefreshedAt = &formatted
	}
	return resp
}
