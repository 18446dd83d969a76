package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"iResearch/server/internal/service"
)

type FileHandler struct {
	files *service.FileService
}

func NewFileHandler(files *service.FileService) *FileHandler {
	return &FileHandler{files: files}
}

// Fetch 按对象路径取文件（概念配图回显）
// GET /api/file/*object
func (h *FileHandler) Fetch(c *gin.Context) {
	objectName := strings.TrimPrefix(c.Param("object"), "/")
	if objectName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的文件路径"})
		return
	}

	obj, err := h.files.FetchObject(c.Request.Context(), objectName)
	if err != nil {
		fail(c, err)
		return
	}
	defer obj.Close()

	// MinIO 的 GetObject 是懒加载，Stat 才知道对象是否存在
	info, err := obj.Stat()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "文件不存在"})
		return
	}

	c.Header("Content-Type", info.ContentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, obj)
}
