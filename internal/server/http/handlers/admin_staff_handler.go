package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/memoriza/memoriza/internal/domain/model"
	"github.com/memoriza/memoriza/internal/server/http/dto"
)

// AdminStaffHandler manages employees, permission groups and the audit log.
type AdminStaffHandler struct {
	facade StaffFacade
}

// NewAdminStaffHandler constructs AdminStaffHandler.
func NewAdminStaffHandler(facade StaffFacade) *AdminStaffHandler {
	return &AdminStaffHandler{facade: facade}
}

// ListGroups handles GET /api/admin/groups.
func (h *AdminStaffHandler) ListGroups(c *gin.Context) {
	groups, err := h.facade.Groups(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.GroupResponse, 0, len(groups))
	for i := range groups {
		response = append(response, toGroupResponse(&groups[i]))
	}
	c.JSON(http.StatusOK, response)
}

// GetGroup handles GET /api/admin/groups/:id.
func (h *AdminStaffHandler) GetGroup(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	group, err := h.facade.Group(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGroupResponse(group))
}

// CreateGroup handles POST /api/admin/groups.
func (h *AdminStaffHandler) CreateGroup(c *gin.Context) {
	var req dto.GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	created, err := h.facade.CreateGroup(c.Request.Context(), groupFromRequest(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toGroupResponse(created))
}

// UpdateGroup handles PUT /api/admin/groups/:id.
func (h *AdminStaffHandler) UpdateGroup(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	group := groupFromRequest(req)
	group.ID = id
	if err := h.facade.UpdateGroup(c.Request.Context(), group); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteGroup handles DELETE /api/admin/groups/:id.
func (h *AdminStaffHandler) DeleteGroup(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.facade.DeleteGroup(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListEmployees handles GET /api/admin/employees.
func (h *AdminStaffHandler) ListEmployees(c *gin.Context) {
	limit, offset := pageFromQuery(c)
	employees, err := h.facade.Employees(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponses(employees))
}

// AssignEmployee handles POST /api/admin/employees.
func (h *AdminStaffHandler) AssignEmployee(c *gin.Context) {
	var req dto.AssignEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.AssignEmployee(c.Request.Context(), req.UserID, req.GroupID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RevokeEmployee handles DELETE /api/admin/employees/:id.
func (h *AdminStaffHandler) RevokeEmployee(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.facade.RevokeEmployee(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCustomers handles GET /api/admin/customers.
func (h *AdminStaffHandler) ListCustomers(c *gin.Context) {
	limit, offset := pageFromQuery(c)
	customers, err := h.facade.Customers(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponses(customers))
}

// ListAccessLog handles GET /api/admin/logs.
func (h *AdminStaffHandler) ListAccessLog(c *gin.Context) {
	var filter model.AccessLogFilter
	if raw := c.Query("employee_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.EmployeeID = &id
		}
	}
	if raw := c.Query("module"); raw != "" {
		module := model.BackOfficeModule(raw)
		filter.Module = &module
	}
	filter.Limit, _ = strconv.Atoi(c.Query("limit"))
	filter.Offset, _ = strconv.Atoi(c.Query("offset"))

	entries, err := h.facade.AccessLog(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.AccessLogEntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, dto.AccessLogEntryResponse{
			ID:         entry.ID,
			EmployeeID: entry.EmployeeID,
			Module:     string(entry.Module),
			Action:     entry.Action,
			Detail:     entry.Detail,
			CreatedAt:  entry.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}

func groupFromRequest(req dto.GroupRequest) *model.EmployeeGroup {
	permissions := make([]model.Permission, 0, len(req.Permissions))
	for _, p := range req.Permissions {
		permissions = append(permissions, model.Permission{
			Module:    model.BackOfficeModule(p.Module),
			CanView:   p.CanView,
			CanCreate: p.CanCreate,
			CanEdit:   p.CanEdit,
			CanDelete: p.CanDelete,
			CanExport: p.CanExport,
		})
	}
	return &model.EmployeeGroup{
		Name:        req.Name,
		Description: req.Description,
		Permissions: permissions,
	}
}

func toGroupResponse(group *model.EmployeeGroup) dto.GroupResponse {
	permissions := make([]dto.PermissionDTO, 0, len(group.Permissions))
	for _, p := range group.Permissions {
		permissions = append(permissions, dto.PermissionDTO{
			Module:    string(p.Module),
			CanView:   p.CanView,
			CanCreate: p.CanCreate,
			CanEdit:   p.CanEdit,
			CanDelete: p.CanDelete,
			CanExport: p.CanExport,
		})
	}
	return dto.GroupResponse{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		Permissions: permissions,
	}
}

func toUserResponses(users []model.User) []dto.UserResponse {
	response := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		response = append(response, dto.UserResponse{
			ID:              u.ID,
			Name:            u.Name,
			Email:           u.Email,
			Phone:           u.Phone,
			Active:          u.Active,
			EmployeeGroupID: u.EmployeeGroupID,
			CreatedAt:       u.CreatedAt,
		})
	}
	return response
}
