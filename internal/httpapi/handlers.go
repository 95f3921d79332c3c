package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Leganyst/clinic-desk/internal/export"
	"github.com/Leganyst/clinic-desk/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type handler struct {
	svc *service.Clinic
}

// --- справочники ---

func (h *handler) listDepartments(c *gin.Context) {
	depts, err := h.svc.ListDepartments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "departments", depts)
}

func (h *handler) listRooms(c *gin.Context) {
	deptID, valid := optionalQueryID(c, "deptId")
	if !valid {
		return
	}
	rooms, err := h.svc.ListAvailableRooms(c.Request.Context(), deptID)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "available rooms", rooms)
}

func (h *handler) listDoctors(c *gin.Context) {
	deptID, valid := optionalQueryID(c, "deptId")
	if !valid {
		return
	}
	doctors, err := h.svc.ActiveDoctors(c.Request.Context(), deptID)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "active doctors", doctors)
}

// --- заявки и регистрация ---

func (h *handler) submitAppointment(c *gin.Context) {
	var req service.AppointmentRequest
	if !bindJSON(c, &req) {
		return
	}
	appt, err := h.svc.SubmitAppointment(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, "appointment submitted", appt)
}

func (h *handler) listPending(c *gin.Context) {
	rows, err := h.svc.ListPendingAppointments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "pending appointments", rows)
}

func (h *handler) verifyAppointment(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req service.VerifyRequest
	if !bindJSON(c, &req) {
		return
	}
	req.ApptID = id

	visit, err := h.svc.VerifyAppointment(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, "appointment verified", visit)
}

func (h *handler) registerOnSite(c *gin.Context) {
	var req service.OnSiteRequest
	if !bindJSON(c, &req) {
		return
	}
	visit, err := h.svc.RegisterOnSite(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, "visit registered", visit)
}

// --- касса ---

func (h *handler) listUnpaid(c *gin.Context) {
	rows, err := h.svc.ListUnpaidVisits(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "unpaid visits", rows)
}

func (h *handler) settleVisit(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req service.SettleRequest
	if !bindJSON(c, &req) {
		return
	}
	req.VisitID = id

	visit, err := h.svc.SettleVisit(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "visit settled", visit)
}

// --- расписание ---

func (h *handler) assignShift(c *gin.Context) {
	var req service.ShiftRequest
	if !bindJSON(c, &req) {
		return
	}
	sched, err := h.svc.AssignShift(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "shift assigned", sched)
}

func (h *handler) listSchedule(c *gin.Context) {
	rows, err := h.svc.ListSchedule(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "schedule", rows)
}

func (h *handler) schedulingOptions(c *gin.Context) {
	deptID, valid := optionalQueryID(c, "deptId")
	if !valid {
		return
	}
	if deptID == nil {
		badRequest(c, "deptId is required")
		return
	}
	opts, err := h.svc.SchedulingOptions(c.Request.Context(), *deptID)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "scheduling options", opts)
}

// --- отчёты и поиск ---

func (h *handler) revenue(c *gin.Context) {
	var req service.ReportRequest
	if !bindQuery(c, &req) {
		return
	}
	rep, err := h.svc.Revenue(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "revenue report", rep)
}

func (h *handler) revenueXLSX(c *gin.Context) {
	var req service.ReportRequest
	if !bindQuery(c, &req) {
		return
	}
	rep, err := h.svc.Revenue(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.RevenueFilename(rep)+`"`)
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := export.WriteRevenue(c.Writer, rep); err != nil {
		_ = c.Error(err)
	}
}

func (h *handler) searchPatients(c *gin.Context) {
	rows, err := h.svc.SearchPatients(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "patients", rows)
}

// --- персонал ---

type staffPageQuery struct {
	Page int `form:"page" binding:"omitempty,gte=1"`
	Size int `form:"size" binding:"omitempty,gte=1"`
}

func (h *handler) listStaff(c *gin.Context) {
	var q staffPageQuery
	if !bindQuery(c, &q) {
		return
	}
	page, err := h.svc.ListStaff(c.Request.Context(), q.Page, q.Size)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "staff", page)
}

func (h *handler) getStaff(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	s, err := h.svc.GetStaff(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "staff member", s)
}

func (h *handler) hireStaff(c *gin.Context) {
	var req service.HireRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.svc.HireStaff(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, "staff hired", s)
}

func (h *handler) editStaff(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req service.EditRequest
	if !bindJSON(c, &req) {
		return
	}
	req.StaffID = id

	s, err := h.svc.EditStaff(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, "staff updated", s)
}

type terminateRequest struct {
	Confirmed bool `json:"confirmed"`
}

func (h *handler) terminateStaff(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req terminateRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.svc.TerminateStaff(c.Request.Context(), id, req.Confirmed); err != nil {
		respondError(c, err)
		return
	}
	ok(c, "staff terminated", gin.H{"staffId": id})
}
