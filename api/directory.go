package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/workshop_backend/models"
)

type expenseRequest struct {
	models.NewExpense
	ExpenseDate string `json:"expense_date"`
}

type salaryPaymentRequest struct {
	models.NewSalaryPayment
	PaymentDate     string `json:"payment_date"`
	PeriodStartDate string `json:"period_start_date"`
	PeriodEndDate   string `json:"period_end_date"`
}

func (h *Handler) addContact(c *gin.Context) {
	var input models.NewContact
	if !h.bind(c, &input) {
		return
	}
	contact, err := h.ledger.AddContact(c.Request.Context(), &input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

func (h *Handler) updateContact(c *gin.Context) {
	id, ok := h.pathId(c)
	if !ok {
		return
	}
	var input models.NewContact
	if !h.bind(c, &input) {
		return
	}
	contact, err := h.ledger.UpdateContact(c.Request.Context(), id, &input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *Handler) deleteContact(c *gin.Context) {
	id, ok := h.pathId(c)
	if !ok {
		return
	}
	if err := h.ledger.DeleteContact(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// listContacts filters with ?type=customer|supplier.
func (h *Handler) listContacts(c *gin.Context) {
	contacts, err := h.ledger.ListContacts(c.Request.Context(), models.ContactType(c.Query("type")))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

func (h *Handler) addEmployee(c *gin.Context) {
	var input models.NewEmployee
	if !h.bind(c, &input) {
		return
	}
	employee, err := h.ledger.AddEmployee(c.Request.Context(), &input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, employee)
}

func (h *Handler) updateEmployee(c *gin.Context) {
	id, ok := h.pathId(c)
	if !ok {
		return
	}
	var input models.NewEmployee
	if !h.bind(c, &input) {
		return
	}
	employee, err := h.ledger.UpdateEmployee(c.Request.Context(), id, &input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *Handler) deleteEmployee(c *gin.Context) {
	id, ok := h.pathId(c)
	if !ok {
		return
	}
	if err := h.ledger.DeleteEmployee(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listEmployees(c *gin.Context) {
	employees, err := h.ledger.ListEmployees(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

func (h *Handler) recordSalaryPayment(c *gin.Context) {
	id, ok := h.pathId(c)
	if !ok {
		return
	}
	var req salaryPaymentRequest
	if !h.bind(c, &req) {
		return
	}
	input := &req.NewSalaryPayment
	input.EmployeeId = id

	var err error
	if input.PaymentDate, err = parseDate("payment_date", req.PaymentDate, false); err != nil {
		h.respondError(c, err)
		return
	}
	if input.PeriodStartDate, err = parseDate("period_start_date", req.PeriodStartDate, false); err != nil {
		h.respondError(c, err)
		return
	}
	if input.PeriodEndDate, err = parseDate("period_end_date", req.PeriodEndDate, false); err != nil {
		h.respondError(c, err)
		return
	}

	payment, err := h.ledger.RecordSalaryPayment(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (h *Handler) listSalaryPayments(c *gin.Context) {
	id, ok := h.pathId(c)
	if !ok {
		return
	}
	payments, err := h.ledger.ListSalaryPayments(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *Handler) addExpense(c *gin.Context) {
	var req expenseRequest
	if !h.bind(c, &req) {
		return
	}
	date, err := parseDate("expense_date", req.ExpenseDate, false)
	if err != nil {
		h.respondError(c, err)
		return
	}
	req.NewExpense.ExpenseDate = date

	expense, err := h.ledger.AddExpense(c.Request.Context(), &req.NewExpense)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (h *Handler) listExpenses(c *gin.Context) {
	expenses, err := h.ledger.ListExpenses(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}
