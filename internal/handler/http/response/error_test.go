package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgdesk/orgdesk-backend-go/internal/domain/attendance"
	"github.com/orgdesk/orgdesk-backend-go/internal/domain/exception"
	"github.com/orgdesk/orgdesk-backend-go/internal/domain/leave"
)

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandleError_ConflictCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code string
	}{
		{"already open", attendance.ErrAlreadyOpen, CodeSessionAlreadyOpen},
		{"no open session", attendance.ErrNoOpenSession, CodeNoOpenSession},
		{"already closed", attendance.ErrAlreadyClosed, CodeSessionAlreadyClosed},
		{"duplicate log", exception.ErrDuplicateLog, CodeDuplicateLog},
		{"exception transition", exception.ErrInvalidTransition, CodeInvalidTransition},
		{"leave transition", leave.ErrInvalidTransition, CodeInvalidTransition},
		{"overlapping leave", leave.ErrOverlappingLeave, CodeOverlappingLeave},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tc.err)

			assert.Equal(t, http.StatusConflict, rec.Code)
			resp := decodeResponse(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.code, resp.Error.Code)
		})
	}
}

func TestHandleError_Unknown(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", resp.Error.Code)
}
