package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"opmlkit/internal/handler"
	"opmlkit/internal/model"
	"opmlkit/internal/service"
	"opmlkit/internal/service/mock"
)

func newSubscriptionHandler(ctrl *gomock.Controller) (*handler.SubscriptionHandler, *mock.MockSubscriptionService, *mock.MockRefreshService) {
	subs := mock.NewMockSubscriptionService(ctrl)
	refresh := mock.NewMockRefreshService(ctrl)
	return handler.NewSubscriptionHandler(subs, refresh), subs, refresh
}

func TestSubscriptionHandler_List_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, subs, _ := newSubscriptionHandler(ctrl)

	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	folderID := int64(1)
	subs.EXPECT().ListFolders(gomock.Any()).Return([]model.Folder{
		{ID: folderID, Name: "Tech", CreatedAt: now, UpdatedAt: now},
	}, nil)
	subs.EXPECT().List(gomock.Any()).Return([]model.Subscription{
		{ID: 10, FolderID: &folderID, Title: "Feed A", URL: "https://a.example/rss", CreatedAt: now, UpdatedAt: now, LastRefreshedAt: &now},
	}, nil)

	e := newTestEcho()
	c, rec := newTestContext(e, newXMLRequest(http.MethodGet, "/subscriptions", ""))

	require.NoError(t, h.List(c))

	var resp handler.SubscriptionListResponse
	assertJSONResponse(t, rec, http.StatusOK, &resp)
	require.Len(t, resp.Folders, 1)
	require.Equal(t, "Tech", resp.Folders[0].Name)
	require.Len(t, resp.Subscriptions, 1)
	require.Equal(t, "Feed A", resp.Subscriptions[0].Title)
	require.NotNil(t, resp.Subscriptions[0].FolderID)
	require.Equal(t, folderID, *resp.Subscriptions[0].FolderID)
	require.NotNil(t, resp.Subscriptions[0].LastRefreshedAt)
	require.Equal(t, "2026-03-14T09:30:00Z", *resp.Subscriptions[0].LastRefreshedAt)
}

func TestSubscriptionHandler_List_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, subs, _ := newSubscriptionHandler(ctrl)
	subs.EXPECT().ListFolders(gomock.Any()).Return(nil, nil)
	subs.EXPECT().List(gomock.Any()).Return(nil, nil)

	e := newTestEcho()
	c, rec := newTestContext(e, newXMLRequest(http.MethodGet, "/subscriptions", ""))

	require.NoError(t, h.List(c))

	var resp handler.SubscriptionListResponse
	assertJSONResponse(t, rec, http.StatusOK, &resp)
	require.Empty(t, resp.Folders)
	require.Empty(t, resp.Subscriptions)
}

func TestSubscriptionHandler_Delete_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, subs, _ := newSubscriptionHandler(ctrl)
	subs.EXPECT().Delete(gomock.Any(), int64(10)).Return(nil)

	e := newTestEcho()
	c, rec := newTestContext(e, newXMLRequest(http.MethodDelete, "/subscriptions/10", ""))
	setPathParams(c, map[string]string{"id": "10"})

	require.NoError(t, h.Delete(c))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSubscriptionHandler_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, subs, _ := newSubscriptionHandler(ctrl)
	subs.EXPECT().Delete(gomock.Any(), int64(99)).Return(service.ErrNotFound)

	e := newTestEcho()
	c, rec := newTestContext(e, newXMLRequest(http.MethodDelete, "/subscriptions/99", ""))
	setPathParams(c, map[string]string{"id": "99"})

	require.NoError(t, h.Delete(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubscriptionHandler_Delete_BadID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _ := newSubscriptionHandler(ctrl)

	e := newTestEcho()
	c, rec := newTestContext(e, newXMLRequest(http.MethodDelete, "/subscriptions/abc", ""))
	setPathParams(c, map[string]string{"id": "abc"})

	require.NoError(t, h.Delete(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubscriptionHandler_Refresh_Starts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, refresh := newSubscriptionHandler(ctrl)
	started := make(chan struct{})
	refresh.EXPECT().IsRefreshing().Return(false)
	refresh.EXPECT().RefreshAll(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		close(started)
		return nil
	})

	e := newTestEcho()
	c, rec := newTestContext(e, newXMLRequest(http.MethodPost, "/refresh", ""))

	require.NoError(t, h.Refresh(c))

	var resp handler.RefreshStartedResponse
	assertJSONResponse(t, rec, http.StatusAccepted, &resp)
	require.Equal(t, "started", resp.Status)

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("expected background refresh to run")
	}
}

func TestSubscriptionHandler_Refresh_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, refresh := newSubscriptionHandler(ctrl)
	refresh.EXPECT().IsRefreshing().Return(true)

	e := newTestEcho()
	c, rec := newTestContext(e, newXMLRequest(http.MethodPost, "/refresh", ""))

	require.NoError(t, h.Refresh(c))
	require.Equal(t, http.StatusConflict, rec.Code)
}
