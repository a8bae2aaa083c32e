package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/macrocam/internal/logging"
	"github.com/example/macrocam/internal/usecase"
)

// MultipartMemory bounds how much of an upload is buffered in memory before
// spilling to a temporary file. It is not an upload size limit.
const MultipartMemory = 32 << 20

// RegisterRoutes wires the HTTP handlers to the Gin router.
func RegisterRoutes(router *gin.Engine, uc *usecase.AnalysisUseCase) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/analyze", func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "image file is required"})
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}

		analysis, err := uc.AnalyzeMeal(c.Request.Context(), data)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": logging.Cause(err).Error()})
			return
		}

		c.Data(http.StatusOK, "application/json", analysis.Raw)
	})
}
