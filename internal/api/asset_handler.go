package api

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/dutchcoders/go-clamd"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"resumeforge/internal/api/middleware"
	"resumeforge/internal/storage"
	"resumeforge/internal/store"
)

// AssetHandler 负责模板缩略图与技术图标的上传及访问。
// 上传前经 ClamAV 扫描，对象键写回数据库后通过预签名 URL 访问。
type AssetHandler struct {
	store     *store.Store
	storage   *storage.Client
	logger    *slog.Logger
	clamdAddr string
	maxBytes  int64
}

// NewAssetHandler 构造 AssetHandler。
func NewAssetHandler(st *store.Store, storageClient *storage.Client, logger *slog.Logger, clamdAddr string, maxBytes int64) *AssetHandler {
	return &AssetHandler{
		store:     st,
		storage:   storageClient,
		logger:    logger,
		clamdAddr: clamdAddr,
		maxBytes:  maxBytes,
	}
}

func (h *AssetHandler) loggerFrom(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	return h.logger
}

// scanAndUpload 扫描并上传表单文件，返回生成的对象键。
func (h *AssetHandler) scanAndUpload(c *gin.Context, file *multipart.FileHeader, prefix string) (string, bool) {
	if h.maxBytes > 0 && file.Size > h.maxBytes {
		BadRequest(c, "file too large")
		return "", false
	}

	clamdClient := clamd.NewClamd(h.clamdAddr)

	fileReader, err := file.Open()
	if err != nil {
		Internal(c, "failed to open file")
		return "", false
	}

	abortChan := make(chan bool)
	scanChan, err := clamdClient.ScanStream(fileReader, abortChan)
	fileReader.Close()
	if err != nil {
		h.loggerFrom(c).Error("scan file", slog.String("error", err.Error()))
		Internal(c, "failed to scan file")
		return "", false
	}
	defer close(abortChan)

	for result := range scanChan {
		if result.Status != clamd.RES_OK {
			BadRequest(c, "malicious file detected")
			return "", false
		}
	}

	fileReader, err = file.Open()
	if err != nil {
		Internal(c, "failed to reopen file")
		return "", false
	}
	defer fileReader.Close()

	objectKey := fmt.Sprintf("%s/%s.png", prefix, uuid.NewString())
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if _, err := h.storage.UploadFile(c.Request.Context(), objectKey, fileReader, file.Size, contentType); err != nil {
		h.loggerFrom(c).Error("upload file", slog.String("error", err.Error()))
		Internal(c, "failed to upload file")
		return "", false
	}
	return objectKey, true
}

// UploadTemplateThumbnail 上传模板缩略图并更新对象键。
func (h *AssetHandler) UploadTemplateThumbnail(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid template id")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "missing file")
		return
	}

	objectKey, ok := h.scanAndUpload(c, file, "template-thumbnails")
	if !ok {
		return
	}

	if err := h.store.SetTemplateThumbnail(c.Request.Context(), id, objectKey); err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"objectKey": objectKey})
}

// UploadTechnologyIcon 上传技术图标并更新对象键。
func (h *AssetHandler) UploadTechnologyIcon(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		BadRequest(c, "invalid technology id")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "missing file")
		return
	}

	objectKey, ok := h.scanAndUpload(c, file, "technology-icons")
	if !ok {
		return
	}

	if err := h.store.SetTechnologyIcon(c.Request.Context(), id, objectKey); err != nil {
		StoreError(c, h.loggerFrom(c), err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"objectKey": objectKey})
}

// GetAssetURL 返回资产的临时预签名 URL。
func (h *AssetHandler) GetAssetURL(c *gin.Context) {
	objectKey := c.Query("key")
	if !isValidAssetObjectKey(objectKey) {
		BadRequest(c, "invalid key")
		return
	}

	signedURL, err := h.storage.GeneratePresignedURL(c.Request.Context(), objectKey, 15*time.Minute)
	if err != nil {
		h.loggerFrom(c).Error("generate presigned url", slog.String("error", err.Error()))
		Internal(c, "failed to generate url")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": signedURL})
}
