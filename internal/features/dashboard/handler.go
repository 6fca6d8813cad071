package dashboard

import (
	"bufio"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jdverbeke/cinevault-server-go/internal/features/favorite"
	"github.com/jdverbeke/cinevault-server-go/internal/features/license"
	"github.com/jdverbeke/cinevault-server-go/internal/features/user"
	"github.com/jdverbeke/cinevault-server-go/internal/features/watchprogress"
	"github.com/jdverbeke/cinevault-server-go/pkg/response"
	"github.com/jdverbeke/cinevault-server-go/pkg/types"
)

type Handler struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// GetOverview returns admin dashboard statistics
// GET /dashboard/overview
func (h *Handler) GetOverview(c *gin.Context) {
	sevenDaysAgo := time.Now().AddDate(0, 0, -7)

	var totalUsers int64
	if err := h.db.Model(&user.User{}).Count(&totalUsers).Error; err != nil {
		response.ErrorWithLog(h.logger, c, http.StatusInternalServerError, "failed to load dashboard data", err)
		return
	}

	var licensedUsers int64
	if err := h.db.Model(&user.User{}).Where("license_key IS NOT NULL").Count(&licensedUsers).Error; err != nil {
		h.logger.Error("failed to count licensed users", slog.String("error", err.Error()))
	}

	var recentSignups int64
	if err := h.db.Model(&user.User{}).Where("created_at >= ?", sevenDaysAgo).Count(&recentSignups).Error; err != nil {
		h.logger.Error("failed to count recent signups", slog.String("error", err.Error()))
	}

	var availableLicenses int64
	if err := h.db.Model(&license.License{}).Where("status = ?", types.LicenseStatusAvailable).Count(&availableLicenses).Error; err != nil {
		h.logger.Error("failed to count available licenses", slog.String("error", err.Error()))
	}

	var claimedLicenses int64
	if err := h.db.Model(&license.License{}).Where("status = ?", types.LicenseStatusClaimed).Count(&claimedLicenses).Error; err != nil {
		h.logger.Error("failed to count claimed licenses", slog.String("error", err.Error()))
	}

	var recentClaims int64
	if err := h.db.Model(&license.License{}).Where("claimed_at >= ?", sevenDaysAgo).Count(&recentClaims).Error; err != nil {
		h.logger.Error("failed to count recent claims", slog.String("error", err.Error()))
	}

	var favoritesCount int64
	if err := h.db.Model(&favorite.Favorite{}).Count(&favoritesCount).Error; err != nil {
		h.logger.Error("failed to count favorites", slog.String("error", err.Error()))
	}

	var progressCount int64
	if err := h.db.Model(&watchprogress.WatchProgress{}).Count(&progressCount).Error; err != nil {
		h.logger.Error("failed to count watch progress rows", slog.String("error", err.Error()))
	}

	response.Success(c, http.StatusOK, gin.H{
		"usersCount":         totalUsers,
		"licensedUsersCount": licensedUsers,
		"recentSignups":      recentSignups,
		"licenses": gin.H{
			"available":    availableLicenses,
			"claimed":      claimedLicenses,
			"recentClaims": recentClaims,
		},
		"favoritesCount":     favoritesCount,
		"watchProgressCount": progressCount,
	}, "", nil)
}

// GetSystemStats returns process and host statistics (memory, CPU, disk)
// GET /dashboard/system-stats
func (h *Handler) GetSystemStats(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	var diskStats *DiskStats
	if runtime.GOOS == "windows" {
		diskStats = getDiskStatsForPlatform("C:")
	} else {
		diskStats = getDiskStatsForPlatform("/")
	}

	response.Success(c, http.StatusOK, gin.H{
		"memory": gin.H{
			"total": m.Sys,
			"used":  m.Alloc,
			"free":  m.Sys - m.Alloc,
		},
		"cpu": gin.H{
			"numCPU": runtime.NumCPU(),
		},
		"goroutines": runtime.NumGoroutine(),
		"disk":       diskStats,
	}, "", nil)
}

type DiskStats struct {
	Free uint64 `json:"free"`
	Size uint64 `json:"size"`
	Path string `json:"path"`
}

// GetSystemLogs returns the last N lines from app.log or error.log
// GET /dashboard/logs?type=app|error&lines=100
func (h *Handler) GetSystemLogs(c *gin.Context) {
	logType := c.DefaultQuery("type", "app")
	if logType != "app" && logType != "error" {
		logType = "app"
	}

	lines, err := strconv.Atoi(c.DefaultQuery("lines", "100"))
	if err != nil {
		lines = 100
	}
	if lines < 10 {
		lines = 10
	}
	if lines > 1000 {
		lines = 1000
	}

	logFile := filepath.Join("logs", fmt.Sprintf("%s.log", logType))

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		response.Error(c, http.StatusNotFound, fmt.Sprintf("Log file not found: %s.log", logType), nil)
		return
	}

	file, err := os.Open(logFile)
	if err != nil {
		h.logger.Error("failed to open log file", slog.String("file", logFile), slog.String("error", err.Error()))
		response.Error(c, http.StatusInternalServerError, "Failed to read log file", nil)
		return
	}
	defer file.Close()

	var allLines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		allLines = append(allLines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		h.logger.Error("failed to scan log file", slog.String("error", err.Error()))
		response.Error(c, http.StatusInternalServerError, "Failed to read log file", nil)
		return
	}

	startIdx := len(allLines) - lines
	if startIdx < 0 {
		startIdx = 0
	}
	lastLines := allLines[startIdx:]

	response.Success(c, http.StatusOK, gin.H{
		"type":  logType,
		"lines": len(lastLines),
		"log":   lastLines,
	}, "", nil)
}

// ClearLogs truncates all log files in the logs directory
// POST /dashboard/logs/clear
func (h *Handler) ClearLogs(c *gin.Context) {
	logsDir := "logs"

	if _, err := os.Stat(logsDir); os.IsNotExist(err) {
		response.Error(c, http.StatusNotFound, "Logs directory not found", nil)
		return
	}

	files, err := os.ReadDir(logsDir)
	if err != nil {
		h.logger.Error("failed to read logs directory", slog.String("error", err.Error()))
		response.Error(c, http.StatusInternalServerError, "Failed to read logs directory", nil)
		return
	}

	cleared := 0
	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(file.Name(), ".log") {
			filePath := filepath.Join(logsDir, file.Name())
			if err := os.Truncate(filePath, 0); err != nil {
				h.logger.Warn("failed to clear log file", slog.String("file", file.Name()), slog.String("error", err.Error()))
			} else {
				cleared++
			}
		}
	}

	response.Success(c, http.StatusOK, gin.H{"cleared": cleared}, fmt.Sprintf("Cleared %d log files.", cleared), nil)
}
