package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/bezalel-media-core/crosspost/logger"
	crosspost "github.com/bezalel-media-core/crosspost/service/crosspost"
	hooks "github.com/bezalel-media-core/crosspost/service/hooks"
	models "github.com/bezalel-media-core/crosspost/service/models"
	notices "github.com/bezalel-media-core/crosspost/service/notices"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Deps struct {
	Dispatcher  *hooks.Dispatcher
	Sessions    notices.SessionStore
	Log         logger.Logger
	AdminApiKey string
}

type savePostRequest struct {
	Autosave bool           `json:"autosave"`
	Post     crosspost.Post `json:"post"`
	// Absent when the edit form had no Medium box.
	MediumStatus  *string `json:"mediumStatus"`
	MediumLicense *string `json:"mediumLicense"`
}

type profileRequest struct {
	Token          string `json:"mediumIntegrationToken"`
	DefaultStatus  string `json:"mediumDefaultPostStatus"`
	DefaultLicense string `json:"mediumDefaultPostLicense"`
}

type optionsResponse struct {
	Statuses []models.Option `json:"statuses"`
	Licenses []models.Option `json:"licenses"`
}

func HandlerHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Ok")
}

func HandlerSettingsOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, optionsResponse{
		Statuses: models.PostStatuses(),
		Licenses: models.PostLicenses(),
	})
}

func HandlerSavePost(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload savePostRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		payload.Post.ID = chi.URLParam(r, "postID")
		evt := crosspost.SavePostEvent{
			Autosave:        payload.Autosave,
			Post:            payload.Post,
			StatusOverride:  payload.MediumStatus,
			LicenseOverride: payload.MediumLicense,
			CorrelationID:   middleware.GetReqID(r.Context()),
		}
		withNotices(d, w, r, func(q *notices.Queue) (interface{}, error) {
			return d.Dispatcher.Fire(r.Context(), hooks.HOOK_SAVE_POST, hooks.SavePostPayload{Event: evt, Queue: q})
		})
	}
}

func HandlerUpdateProfile(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload profileRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		update := crosspost.ProfileUpdate{
			ActorID:        r.Header.Get(HEADER_USER_ID),
			UserID:         chi.URLParam(r, "userID"),
			Token:          payload.Token,
			DefaultStatus:  payload.DefaultStatus,
			DefaultLicense: payload.DefaultLicense,
			CorrelationID:  middleware.GetReqID(r.Context()),
		}
		hook := hooks.HOOK_PERSONAL_OPTIONS_UPDATE
		if update.ActorID != update.UserID {
			hook = hooks.HOOK_EDIT_USER_PROFILE_UPDATE
		}
		withNotices(d, w, r, func(q *notices.Queue) (interface{}, error) {
			return d.Dispatcher.Fire(r.Context(), hook, hooks.ProfilePayload{Update: update, Queue: q})
		})
	}
}

func HandlerNotices(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := sessionID(w, r)
		q, err := d.Sessions.Load(r.Context(), sid)
		if err != nil {
			d.Log.Error("error loading notices", logger.Error(err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		out, err := d.Dispatcher.Fire(r.Context(), hooks.HOOK_ADMIN_NOTICES, hooks.NoticesPayload{Queue: q})
		// Notices are shown once, a notice that fails to render is dropped with the rest.
		if err := d.Sessions.Save(r.Context(), sid, q); err != nil {
			d.Log.Error("error clearing notices", logger.Error(err))
		}
		if err != nil {
			d.Log.Error("error rendering notices", logger.Error(err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, out)
	}
}

func HandlerPostBox(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := d.Dispatcher.Fire(r.Context(), hooks.HOOK_ADD_META_BOXES_POST, hooks.PostBoxPayload{
			PostID: chi.URLParam(r, "postID"),
			UserID: r.Header.Get(HEADER_USER_ID),
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// withNotices runs fn against the session's notice queue and stores whatever
// fn queued for the next admin page.
func withNotices(d Deps, w http.ResponseWriter, r *http.Request, fn func(q *notices.Queue) (interface{}, error)) {
	sid := sessionID(w, r)
	q, err := d.Sessions.Load(r.Context(), sid)
	if err != nil {
		d.Log.Error("error loading notices", logger.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out, err := fn(q)
	// Notices queued before a store failure are still shown.
	if err := d.Sessions.Save(r.Context(), sid, q); err != nil {
		d.Log.Error("error saving notices", logger.Error(err))
	}
	if errors.Is(err, crosspost.ErrNotAuthorized) {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	fmt.Fprint(w, msg)
}
