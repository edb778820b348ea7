package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/equiptrack/gateway/internal/dto"
	apierrors "github.com/equiptrack/gateway/internal/errors"
	"github.com/equiptrack/gateway/internal/models"
	"github.com/equiptrack/gateway/internal/upstream"
)

// recentWorkOrderLimit caps the history shown on a machine detail.
const recentWorkOrderLimit = 5

// DepartmentHandler manages departments and their machines. All routes sit
// behind the admin gate; the role check happens before any upstream call.
type DepartmentHandler struct {
	client *upstream.Client
}

func NewDepartmentHandler(client *upstream.Client) *DepartmentHandler {
	return &DepartmentHandler{client: client}
}

// ListDepartments returns every department annotated with its machine count.
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	client := authedClient(c, h.client)

	departments, err := client.ListDepartments(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	machines, err := client.ListMachines(c.Request.Context(), "")
	if err != nil {
		respondServiceError(c, err)
		return
	}

	counts := make(map[string]int, len(departments))
	for _, m := range machines {
		counts[m.DepartmentID]++
	}

	summaries := make([]dto.DepartmentSummary, 0, len(departments))
	for _, d := range departments {
		summaries = append(summaries, dto.DepartmentSummary{
			Department:   d,
			MachineCount: counts[d.ID],
		})
	}
	c.JSON(http.StatusOK, summaries)
}

// GetDepartment returns one department together with its machines.
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	client := authedClient(c, h.client)

	departments, err := client.ListDepartments(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	var department *models.Department
	for i := range departments {
		if departments[i].ID == c.Param("id") {
			department = &departments[i]
			break
		}
	}
	if department == nil {
		apierrors.NotFound(c, "Department not found")
		return
	}

	machines, err := client.ListMachines(c.Request.Context(), department.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"department": department,
		"machines":   machines,
	})
}

type createDepartmentRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req createDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	client := authedClient(c, h.client)
	department, err := client.CreateDepartment(c.Request.Context(), req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, department)
}

func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	client := authedClient(c, h.client)
	if err := client.DeleteDepartment(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Department deleted successfully"})
}

// ListMachines returns machines, optionally scoped with ?department_id=.
func (h *DepartmentHandler) ListMachines(c *gin.Context) {
	client := authedClient(c, h.client)
	machines, err := client.ListMachines(c.Request.Context(), c.Query("department_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, machines)
}

// GetMachine returns one machine joined with its department and the most
// recent work orders raised against it.
func (h *DepartmentHandler) GetMachine(c *gin.Context) {
	client := authedClient(c, h.client)

	machines, err := client.ListMachines(c.Request.Context(), "")
	if err != nil {
		respondServiceError(c, err)
		return
	}
	var machine *models.Machine
	for i := range machines {
		if machines[i].ID == c.Param("id") {
			machine = &machines[i]
			break
		}
	}
	if machine == nil {
		apierrors.NotFound(c, "Machine not found")
		return
	}

	departments, err := client.ListDepartments(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	var department *models.Department
	for i := range departments {
		if departments[i].ID == machine.DepartmentID {
			department = &departments[i]
			break
		}
	}

	workOrders, err := client.ListWorkOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	recent := make([]models.WorkOrder, 0)
	for _, wo := range workOrders {
		if wo.MachineID != nil && *wo.MachineID == machine.ID {
			recent = append(recent, wo)
		}
	}
	sort.Slice(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > recentWorkOrderLimit {
		recent = recent[:recentWorkOrderLimit]
	}

	c.JSON(http.StatusOK, gin.H{
		"machine":            machine,
		"department":         department,
		"recent_work_orders": recent,
	})
}

type createMachineRequest struct {
	Name         string `json:"name" binding:"required"`
	DepartmentID string `json:"department_id" binding:"required"`
}

func (h *DepartmentHandler) CreateMachine(c *gin.Context) {
	var req createMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	client := authedClient(c, h.client)
	machine, err := client.CreateMachine(c.Request.Context(), req.Name, req.DepartmentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, machine)
}

func (h *DepartmentHandler) DeleteMachine(c *gin.Context) {
	client := authedClient(c, h.client)
	if err := client.DeleteMachine(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Machine deleted successfully"})
}
