package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/equiptrack/gateway/internal/errors"
)

// SupportHandler serves the static support page payload and accepts support
// requests. Requests are acknowledged only; there is no ticketing backend.
type SupportHandler struct{}

func NewSupportHandler() *SupportHandler {
	return &SupportHandler{}
}

type supportSection struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

type supportInfo struct {
	Contact  gin.H            `json:"contact"`
	Sections []supportSection `json:"sections"`
}

var supportPayload = supportInfo{
	Contact: gin.H{
		"email": "support@equiptrack.pro",
		"phone": "+1 (555) 123-4567",
		"hours": "Mon-Fri, 9AM-6PM EST",
	},
	Sections: []supportSection{
		{
			ID:    "getting-started",
			Title: "Getting Started",
			Content: []string{
				"Welcome to EquipTrack Pro - your complete maintenance and repair management solution.",
				"After logging in, you'll see the main dashboard with access to all features.",
				"Your 14-day free trial gives you full access to all premium features.",
			},
		},
		{
			ID:    "repair-work-orders",
			Title: "Repair Work Orders",
			Content: []string{
				"View repair work orders in a Kanban board and drag cards between columns to update status.",
				"Click any work order card to view details, checklists, and print documents.",
				"Use search and filter options to find specific work orders.",
			},
		},
		{
			ID:    "maintenance-work-orders",
			Title: "Maintenance Work Orders",
			Content: []string{
				"Schedule preventive maintenance with Daily, Weekly, and Monthly frequencies.",
				"Each maintenance task includes checklists, instructions, and safety notes.",
				"Print maintenance work orders for technicians in the field.",
			},
		},
		{
			ID:    "daily-tasks",
			Title: "Daily Tasks Dashboard",
			Content: []string{
				"See today's tasks grouped by status: Overdue, Pending, In Progress, Completed.",
				"Tasks starting within 2 hours are flagged as upcoming.",
			},
		},
	},
}

func (h *SupportHandler) GetSupportInfo(c *gin.Context) {
	c.JSON(http.StatusOK, supportPayload)
}

type supportRequest struct {
	Subject  string `json:"subject" binding:"required"`
	Message  string `json:"message" binding:"required"`
	Priority string `json:"priority"`
}

func (h *SupportHandler) SubmitSupportRequest(c *gin.Context) {
	var req supportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Priority == "" {
		req.Priority = "Medium"
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Support request sent successfully! We'll get back to you within 24 hours.",
	})
}
