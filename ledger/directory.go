package ledger

import (
	"context"
	"fmt"

	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/mmdatafocus/workshop_backend/utils"
)

func requireContact(tx Tx, contactId int, contactType models.ContactType) error {
	contact, err := tx.GetContact(contactId)
	if err != nil {
		return err
	}
	if contact.Type != contactType {
		return utils.NewValidationError("contact_id", "contact %q is not a %s", contact.Name, contactType)
	}
	return nil
}

func (l *Ledger) AddContact(ctx context.Context, input *models.NewContact) (*models.Contact, error) {
	if err := input.Validate(l.countryCode); err != nil {
		return nil, l.fail("AddContact", err)
	}
	contact := &models.Contact{
		Name:    input.Name,
		Type:    input.Type,
		Phone:   input.Phone,
		Address: input.Address,
		Notes:   input.Notes,
	}
	err := l.atomic(ctx, "AddContact", func(tx Tx) error {
		return tx.Insert(contact)
	})
	if err != nil {
		return nil, err
	}
	return contact, nil
}

func (l *Ledger) UpdateContact(ctx context.Context, contactId int, input *models.NewContact) (*models.Contact, error) {
	if err := input.Validate(l.countryCode); err != nil {
		return nil, l.fail("UpdateContact", err)
	}
	var contact *models.Contact
	err := l.atomic(ctx, "UpdateContact", func(tx Tx) error {
		var err error
		contact, err = tx.GetContact(contactId)
		if err != nil {
			return err
		}
		contact.Name = input.Name
		contact.Type = input.Type
		contact.Phone = input.Phone
		contact.Address = input.Address
		contact.Notes = input.Notes
		return tx.Update(contact)
	})
	if err != nil {
		return nil, err
	}
	return contact, nil
}

// DeleteContact removes a directory entry. Purchases and sales orders keep
// the contact id they were recorded with.
func (l *Ledger) DeleteContact(ctx context.Context, contactId int) error {
	return l.atomic(ctx, "DeleteContact", func(tx Tx) error {
		contact, err := tx.GetContact(contactId)
		if err != nil {
			return err
		}
		return tx.Delete(contact)
	})
}

// ListContacts lists every contact, or only one type when contactType is set.
func (l *Ledger) ListContacts(ctx context.Context, contactType models.ContactType) ([]*models.Contact, error) {
	if contactType != "" && !contactType.IsValid() {
		return nil, l.fail("ListContacts", utils.NewValidationError("type", "must be one of [customer supplier]"))
	}
	var contacts []*models.Contact
	err := l.snapshot(ctx, "ListContacts", func(r Reader) error {
		var err error
		contacts, err = r.ListContacts(contactType)
		return err
	})
	return contacts, err
}

func (l *Ledger) AddEmployee(ctx context.Context, input *models.NewEmployee) (*models.Employee, error) {
	if err := input.Validate(); err != nil {
		return nil, l.fail("AddEmployee", err)
	}
	employee := &models.Employee{
		Name:        input.Name,
		PaymentType: input.PaymentType,
		PaymentRate: input.PaymentRate,
	}
	err := l.atomic(ctx, "AddEmployee", func(tx Tx) error {
		return tx.Insert(employee)
	})
	if err != nil {
		return nil, err
	}
	return employee, nil
}

func (l *Ledger) UpdateEmployee(ctx context.Context, employeeId int, input *models.NewEmployee) (*models.Employee, error) {
	if err := input.Validate(); err != nil {
		return nil, l.fail("UpdateEmployee", err)
	}
	var employee *models.Employee
	err := l.atomic(ctx, "UpdateEmployee", func(tx Tx) error {
		var err error
		employee, err = tx.GetEmployee(employeeId)
		if err != nil {
			return err
		}
		employee.Name = input.Name
		employee.PaymentType = input.PaymentType
		employee.PaymentRate = input.PaymentRate
		return tx.Update(employee)
	})
	if err != nil {
		return nil, err
	}
	return employee, nil
}

func (l *Ledger) DeleteEmployee(ctx context.Context, employeeId int) error {
	return l.atomic(ctx, "DeleteEmployee", func(tx Tx) error {
		employee, err := tx.GetEmployee(employeeId)
		if err != nil {
			return err
		}
		return tx.Delete(employee)
	})
}

func (l *Ledger) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	var employees []*models.Employee
	err := l.snapshot(ctx, "ListEmployees", func(r Reader) error {
		var err error
		employees, err = r.ListEmployees()
		return err
	})
	return employees, err
}

func (l *Ledger) AddExpense(ctx context.Context, input *models.NewExpense) (*models.Expense, error) {
	if err := input.Validate(); err != nil {
		return nil, l.fail("AddExpense", err)
	}
	expense := &models.Expense{
		Description: input.Description,
		Amount:      input.Amount,
		ExpenseDate: input.ExpenseDate,
	}
	err := l.atomic(ctx, "AddExpense", func(tx Tx) error {
		if err := tx.Insert(expense); err != nil {
			return err
		}
		return appendEvent(ctx, tx, "expense", expense.ID, "recorded", expense)
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

func (l *Ledger) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	var expenses []*models.Expense
	err := l.snapshot(ctx, "ListExpenses", func(r Reader) error {
		var err error
		expenses, err = r.ListExpenses()
		return err
	})
	return expenses, err
}

// RecordSalaryPayment stores the payment and its matching expense together so
// salaries show up in profit and loss.
func (l *Ledger) RecordSalaryPayment(ctx context.Context, input *models.NewSalaryPayment) (*models.SalaryPayment, error) {
	if err := input.Validate(); err != nil {
		return nil, l.fail("RecordSalaryPayment", err)
	}
	var payment *models.SalaryPayment
	err := l.atomic(ctx, "RecordSalaryPayment", func(tx Tx) error {
		employee, err := tx.GetEmployee(input.EmployeeId)
		if err != nil {
			return err
		}
		payment = &models.SalaryPayment{
			EmployeeId:      employee.ID,
			Amount:          input.Amount,
			PaymentDate:     input.PaymentDate,
			PeriodStartDate: input.PeriodStartDate,
			PeriodEndDate:   input.PeriodEndDate,
		}
		if err := tx.Insert(payment); err != nil {
			return err
		}
		expense := &models.Expense{
			Description: fmt.Sprintf("Salary: %s (%s - %s)", employee.Name,
				input.PeriodStartDate.Format(utils.DateLayout), input.PeriodEndDate.Format(utils.DateLayout)),
			Amount:          input.Amount,
			ExpenseDate:     input.PaymentDate,
			SalaryPaymentId: &payment.ID,
		}
		if err := tx.Insert(expense); err != nil {
			return err
		}
		return appendEvent(ctx, tx, "salary_payment", payment.ID, "recorded", payment)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (l *Ledger) ListSalaryPayments(ctx context.Context, employeeId int) ([]*models.SalaryPayment, error) {
	var payments []*models.SalaryPayment
	err := l.snapshot(ctx, "ListSalaryPayments", func(r Reader) error {
		if _, err := r.GetEmployee(employeeId); err != nil {
			return err
		}
		var err error
		payments, err = r.ListSalaryPayments(employeeId)
		return err
	})
	return payments, err
}
