package handler

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"iResearch/server/internal/dto"
	"iResearch/server/internal/service"
)

type ImportHandler struct {
	svc   *service.ImportService
	files *service.FileService
	audit *service.AuditService
}

func NewImportHandler(svc *service.ImportService, files *service.FileService, audit *service.AuditService) *ImportHandler {
	return &ImportHandler{svc: svc, files: files, audit: audit}
}

// Upload 批量导入公司/概念
// POST /api/upload
// Form-Data: file=公司数组 JSON
func (h *ImportHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "没有上传文件"})
		return
	}
	if strings.ToLower(filepath.Ext(fh.Filename)) != ".json" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "只支持 JSON 文件"})
		return
	}

	src, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "读取上传文件失败"})
		return
	}
	defer src.Close()

	raw, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "读取上传文件失败"})
		return
	}

	// 顶层必须是数组，单个对象也算格式错误
	var records []dto.ImportRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		var probe interface{}
		if json.Unmarshal(raw, &probe) == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "JSON格式错误，应为数组"})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "JSON格式错误"})
		}
		return
	}

	resp, err := h.svc.ImportBatch(c.Request.Context(), records)
	if err != nil {
		fail(c, err)
		return
	}

	// 原始文件归档失败不影响导入结果
	if _, err := h.files.ArchiveImportFile(c.Request.Context(), fh); err != nil {
		log.Printf("⚠️ 导入文件归档失败: %v", err)
	}

	recordAudit(c, h.audit, "import", "company", 0, map[string]interface{}{
		"records":         len(records),
		"companies_added": resp.CompaniesAdded,
		"concepts_added":  resp.ConceptsAdded,
		"errors":          len(resp.Errors),
	})
	c.JSON(http.StatusOK, resp)
}
