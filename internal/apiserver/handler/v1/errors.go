package v1

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/lectern-ai/lectern/pkg/errorx"
)

// API server handler error codes.
// Code format: 1XXYYZ
//   - 1:  module prefix (apiserver handler)
//   - XX: resource group (00=common, 01=chat, 02=assistant, 03=organization,
//     04=tool/strategy, 05=knowledge)
//   - YY: sequential error number
//   - Z:  reserved (0)

const (
	// Common request errors (100xxx).
	ErrBind       = 100001
	ErrValidation = 100002

	// Chat completions errors (1001xx).
	ErrMessagesEmpty = 100101
	ErrNoUserMessage = 100102
	ErrCompletion    = 100103
	ErrStreamRecv    = 100104

	// Assistant errors (1002xx).
	ErrAssistantNotFound = 100201
	ErrAssistantCreate   = 100202
	ErrAssistantUpdate   = 100203
	ErrAssistantList     = 100204
	ErrAssistantDelete   = 100205
	ErrAssistantInvalid  = 100206

	// Organization errors (1003xx).
	ErrOrganizationNotFound = 100301
	ErrOrganizationCreate   = 100302
	ErrOrganizationUpdate   = 100303
	ErrOrganizationList     = 100304
	ErrOrganizationDelete   = 100305

	// Knowledge errors (1005xx).
	ErrCollectionList = 100501
)

// bindErrorCode separates field validation failures from malformed request
// bodies so clients can tell a bad value from broken JSON.
func bindErrorCode(err error) int {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return ErrValidation
	}
	return ErrBind
}

func init() {
	// Common.
	errorx.MustRegister(newCoder(ErrBind, http.StatusBadRequest, "Request body binding failed"))
	errorx.MustRegister(newCoder(ErrValidation, http.StatusBadRequest, "Request validation failed"))

	// Chat completions.
	errorx.MustRegister(newCoder(ErrMessagesEmpty, http.StatusBadRequest, "Messages array is required and must not be empty"))
	errorx.MustRegister(newCoder(ErrNoUserMessage, http.StatusBadRequest, "No user message found in messages array"))
	errorx.MustRegister(newCoder(ErrCompletion, http.StatusInternalServerError, "Completion failed"))
	errorx.MustRegister(newCoder(ErrStreamRecv, http.StatusInternalServerError, "Stream receive error"))

	// Assistant.
	errorx.MustRegister(newCoder(ErrAssistantNotFound, http.StatusNotFound, "Assistant not found"))
	errorx.MustRegister(newCoder(ErrAssistantCreate, http.StatusInternalServerError, "Failed to create assistant"))
	errorx.MustRegister(newCoder(ErrAssistantUpdate, http.StatusInternalServerError, "Failed to update assistant"))
	errorx.MustRegister(newCoder(ErrAssistantList, http.StatusInternalServerError, "Failed to list assistants"))
	errorx.MustRegister(newCoder(ErrAssistantDelete, http.StatusInternalServerError, "Failed to delete assistant"))
	errorx.MustRegister(newCoder(ErrAssistantInvalid, http.StatusUnprocessableEntity, "Assistant configuration is invalid"))

	// Organization.
	errorx.MustRegister(newCoder(ErrOrganizationNotFound, http.StatusNotFound, "Organization not found"))
	errorx.MustRegister(newCoder(ErrOrganizationCreate, http.StatusInternalServerError, "Failed to create organization"))
	errorx.MustRegister(newCoder(ErrOrganizationUpdate, http.StatusInternalServerError, "Failed to update organization"))
	errorx.MustRegister(newCoder(ErrOrganizationList, http.StatusInternalServerError, "Failed to list organizations"))
	errorx.MustRegister(newCoder(ErrOrganizationDelete, http.StatusInternalServerError, "Failed to delete organization"))

	// Knowledge.
	errorx.MustRegister(newCoder(ErrCollectionList, http.StatusInternalServerError, "Failed to list collections"))
}

type coder struct {
	code int
	http int
	msg  string
}

func newCoder(code, httpStatus int, msg string) *coder {
	return &coder{code: code, http: httpStatus, msg: msg}
}

func (c *coder) Code() int         { return c.code }
func (c *coder) HTTPStatus() int   { return c.http }
func (c *coder) String() string    { return c.msg }
func (c *coder) Reference() string { return "" }
