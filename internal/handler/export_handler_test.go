package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mpadjest/bingeplan-web/internal/service"
)

func TestDownloadSetsAttachmentHeaders(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signIn(t)
	app.export.export = &service.Export{
		Filename:    "bingeplan.ics",
		ContentType: "text/calendar; charset=utf-8",
		Data:        []byte("BEGIN:VCALENDAR"),
	}

	req, _ := http.NewRequest(http.MethodGet, "/events/export?format=ics", nil)
	req.AddCookie(cookie)

	resp := app.do(req)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, `attachment; filename="bingeplan.ics"`, resp.Header().Get("Content-Disposition"))
	require.Equal(t, "text/calendar; charset=utf-8", resp.Header().Get("Content-Type"))
	require.Contains(t, resp.Body.String(), "BEGIN:VCALENDAR")
}

func TestDownloadDefaultsToICS(t *testing.T) {
	app := newTestApp(t)
	cookie := app.signIn(t)
	app.export.export = &service.Export{Filename: "bingeplan.ics", ContentType: "text/calendar; charset=utf-8"}

	req, _ := http.NewRequest(http.MethodGet, "/events/export", nil)
	req.AddCookie(cookie)

	resp := app.do(req)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, `attachment; filename="bingeplan.ics"`, resp.Header().Get("Content-Disposition"))
}
