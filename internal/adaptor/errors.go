package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

var kindStatus = map[usecase.Kind]int{
	usecase.KindValidation: http.StatusBadRequest,
	usecase.KindNotFound:   http.StatusNotFound,
	usecase.KindReference:  http.StatusUnprocessableEntity,
	usecase.KindConflict:   http.StatusConflict,
	usecase.KindExternal:   http.StatusBadGateway,
	usecase.KindInternal:   http.StatusInternalServerError,
}

// handleServiceError writes err in the error envelope. Internal causes are
// logged but never sent to the client.
func handleServiceError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error, operation string) {
	requestID, _ := utils.GetRequestIDFromContext(r.Context())

	var svcErr *usecase.Error
	if !errors.As(err, &svcErr) {
		svcErr = &usecase.Error{Kind: usecase.KindInternal, Err: err}
	}

	status, ok := kindStatus[svcErr.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	fields := []zap.Field{
		zap.Error(err),
		zap.String("operation", operation),
		zap.String("kind", string(svcErr.Kind)),
		zap.String("request_id", requestID),
	}

	message := svcErr.Message
	switch svcErr.Kind {
	case usecase.KindInternal:
		log.Error(operation+" failed", fields...)
		message = "Internal server error"
	case usecase.KindExternal:
		log.Error(operation+" failed - payment gateway", fields...)
	default:
		log.Warn(operation+" rejected", fields...)
	}

	var details any
	if len(svcErr.Fields) > 0 {
		details = svcErr.Fields
	}

	utils.ResponseError(w, status, string(svcErr.Kind), message, details)
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst as is when
// allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return true
		}
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		utils.ResponseBadRequest(w, "Invalid ID", map[string]string{"id": "Must be a positive integer"})
		return 0, false
	}
	return id, true
}
