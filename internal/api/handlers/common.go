package handlers

import (
	"bytes"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/collegeconnect/backend/internal/api/middleware"
	"github.com/collegeconnect/backend/internal/services"
	"github.com/collegeconnect/backend/internal/utils"
)

// writeError maps a service error to its HTTP status and the {"msg": ...}
// body the API uses everywhere outside the auth endpoints.
func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)
	c.JSON(status, gin.H{"msg": utils.Message(err, http.StatusText(status))})
}

// requireCaller returns the authenticated caller or writes a 401.
func requireCaller(c *gin.Context) (services.Caller, bool) {
	ident, ok := middleware.GetIdentity(c)
	if !ok || ident.UserID == "" {
		writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "unauthorized", nil))
		return services.Caller{}, false
	}
	return services.Caller{
		UserID:    ident.UserID,
		Role:      ident.Role,
		CollegeID: ident.CollegeID,
	}, true
}

const maxPDFSize = 5 << 20

// readPDFUpload pulls the multipart field as a PDF, sniffing the content to
// reject mislabelled files.
func readPDFUpload(c *gin.Context, field string) ([]byte, error) {
	const op = "handlers.readPDFUpload"

	fh, err := c.FormFile(field)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "missing multipart field '"+field+"'", err)
	}
	if ext := strings.ToLower(filepath.Ext(fh.Filename)); ext != ".pdf" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "only .pdf is allowed", nil)
	}
	if fh.Size <= 0 || fh.Size > maxPDFSize {
		return nil, utils.E(utils.CodeInvalidArgument, op, "file too large (max 5MB)", nil)
	}

	file, err := fh.Open()
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to open upload", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(file, maxPDFSize+1)); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to read upload", err)
	}
	data := buf.Bytes()

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	if http.DetectContentType(head) != "application/pdf" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid content type (must be pdf)", nil)
	}
	return data, nil
}
