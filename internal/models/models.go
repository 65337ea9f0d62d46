package models

// Category is the fixed set of design categories the boutique offers.
type Category string

const (
	CategoryBlouse        Category = "Blouse"
	CategoryShortOnePiece Category = "Short One-Piece"
	CategoryLongOnePiece  Category = "Long One-Piece"
	CategoryDress         Category = "Dress"
	CategoryKurtis        Category = "Kurtis"
	CategoryJariAriWork   Category = "Jari Ari Work"
	CategoryGonde         Category = "Gonde"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{
		CategoryBlouse,
		CategoryShortOnePiece,
		CategoryLongOnePiece,
		CategoryDress,
		CategoryKurtis,
		CategoryJariAriWork,
		CategoryGonde,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Design is a portfolio item in the public gallery. Designs are immutable
// once created: the store exposes only create and delete.
//
// JSON field names double as the remote collection's column names, so they
// must stay camelCase.
type Design struct {
	ID          string   `json:"id"`    // caller-generated, time-based
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Image       string   `json:"image"`     // data URI or public object URL
	CreatedAt   string   `json:"createdAt"` // ISO-8601
}

// Measurement is the flat set of body dimensions recorded for a customer.
// Dimension values are free-form strings (tailors mix units and notes).
type Measurement struct {
	BlouseLength string `json:"blouseLength"`
	DressLength  string `json:"dressLength"`

	Chest       string `json:"chest"`
	WaistRound  string `json:"waistRound"`
	WaistHeight string `json:"waistHeight"`
	SeatRound   string `json:"seatRound"`
	TuksPoint   string `json:"tuksPoint"`

	SleeveLength string `json:"sleeveLength"`
	ArmRound     string `json:"armRound"`
	Armhole      string `json:"armhole"`
	Shoulder     string `json:"shoulder"`

	FrontNeck string `json:"frontNeck"`
	BackNeck  string `json:"backNeck"`

	Notes string `json:"notes"`
	// DateSaved is stamped by the storage layer on every successful save.
	// Callers must not set it themselves.
	DateSaved     string `json:"dateSaved"`
	DueDate       string `json:"dueDate,omitempty"`
	IsSubmitted   bool   `json:"isSubmitted,omitempty"`
	IsPaymentDone bool   `json:"isPaymentDone,omitempty"`
}

// PreferredDesign is a reference image attached to a customer. It has no
// lifecycle of its own; it is created and deleted only through customer saves.
type PreferredDesign struct {
	ID       string   `json:"id"`
	Image    string   `json:"image"`
	Category Category `json:"category"`
	Notes    string   `json:"notes"`
}

// Customer is a client record. Identity is the ID; name and phone are not
// keys. The customer exclusively owns its measurement block and preferred
// design list.
type Customer struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Phone            string            `json:"phone"`
	Measurements     *Measurement      `json:"measurements,omitempty"`
	PreferredDesigns []PreferredDesign `json:"preferredDesigns"`
}

// AdminAuth is the device-local login flag. It never syncs to the remote
// store.
type AdminAuth struct {
	IsLoggedIn bool   `json:"isLoggedIn"`
	AdminID    string `json:"adminId"`
}
