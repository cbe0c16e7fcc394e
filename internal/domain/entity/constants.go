package entity

// Bill status codes as stored
const (
	BillStatusDraft    = "draft" // receipt uploaded, form not submitted yet
	BillStatusPending  = "pending"
	BillStatusAccepted = "accepted"
	BillStatusRefused  = "refused"
)

// Expense type labels offered by the new bill form
const (
	ExpenseTypeTransport   = "Transports"
	ExpenseTypeRestaurant  = "Restaurants et bars"
	ExpenseTypeHotel       = "Hôtel et logement"
	ExpenseTypeOnline      = "Services en ligne"
	ExpenseTypeIT          = "IT et électronique"
	ExpenseTypeEquipment   = "Equipement et matériel"
	ExpenseTypeOfficeSuppl = "Fournitures de bureau"
)

// ExpenseTypes lists the expense types in form order.
var ExpenseTypes = []string{
	ExpenseTypeTransport,
	ExpenseTypeRestaurant,
	ExpenseTypeHotel,
	ExpenseTypeOnline,
	ExpenseTypeIT,
	ExpenseTypeEquipment,
	ExpenseTypeOfficeSuppl,
}

// DefaultPCT is the percentage applied when the form leaves it empty.
const DefaultPCT = 20

// User type constants
const (
	UserTypeEmployee = "Employee"
	UserTypeAdmin    = "Admin"
)
