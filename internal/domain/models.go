package domain

// Property types the agency sells.
const (
	TypeVilla       = "VILLA"
	TypeAppartement = "APPARTEMENT"
	TypeChalet      = "CHALET"
	TypeDomaine     = "DOMAINE"
	TypePenthouse   = "PENTHOUSE"
	TypeMaison      = "MAISON"
	TypeTerrain     = "TERRAIN"
)

type Property struct {
	ID          string   `db:"id" json:"id"`
	Slug        string   `db:"slug" json:"slug"`
	Reference   string   `db:"reference" json:"reference"`
	Title       string   `db:"title" json:"title"`
	Description string   `db:"description" json:"description"`
	Type        string   `db:"type" json:"type"`
	Destination string   `db:"destination" json:"destination"`
	City        string   `db:"city" json:"city"`
	Address     string   `db:"address" json:"address,omitempty"`
	Latitude    *float64 `db:"latitude" json:"latitude,omitempty"`
	Longitude   *float64 `db:"longitude" json:"longitude,omitempty"`
	Price       int64    `db:"price" json:"price"` // whole EUR
	Surface     float64  `db:"surface" json:"surface"`
	Rooms       int      `db:"rooms" json:"rooms"`
	Bedrooms    int      `db:"bedrooms" json:"bedrooms"`
	Bathrooms   int      `db:"bathrooms" json:"bathrooms"`
	DPE         string   `db:"dpe" json:"dpe,omitempty"`
	Badge       string   `db:"badge" json:"badge,omitempty"`
	Amenities   []string `db:"-" json:"amenities"`
	Published   bool     `db:"published" json:"published"`
	Featured    bool     `db:"featured" json:"featured"`
	AgentID     *string  `db:"agent_id" json:"agentId,omitempty"`
	CreatedAt   string   `db:"created_at" json:"createdAt"`
	UpdatedAt   string   `db:"updated_at" json:"updatedAt,omitempty"`

	AmenitiesJSON string `db:"amenities_json" json:"-"`
}

// PropertyImage is one gallery photo. SortOrder 0 is the cover image;
// after every completed mutation the orders of a property's images form
// a gap-free 0..N-1 sequence.
type PropertyImage struct {
	ID         string `db:"id" json:"id"`
	PropertyID string `db:"property_id" json:"propertyId"`
	URL        string `db:"url" json:"url"`
	Alt        string `db:"alt" json:"alt"`
	SortOrder  int    `db:"sort_order" json:"order"`
	CreatedAt  string `db:"created_at" json:"createdAt"`
}

// PropertyDetail is the public detail payload: the listing plus its
// ordered gallery and the agent in charge, if any.
type PropertyDetail struct {
	Property
	Images []PropertyImage `json:"images"`
	Agent  *Agent          `json:"agent,omitempty"`
}

// PropertyPage is one page of catalog results.
type PropertyPage struct {
	Items      []Property `json:"items"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	TotalPages int        `json:"totalPages"`
}

type Agent struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Title     string `db:"title" json:"title"`
	Phone     string `db:"phone" json:"phone"`
	Email     string `db:"email" json:"email"`
	Photo     string `db:"photo" json:"photo,omitempty"`
	Territory string `db:"territory" json:"territory"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

// Lead is a contact-form submission, optionally tied to a listing.
type Lead struct {
	ID         string  `db:"id" json:"id"`
	PropertyID *string `db:"property_id" json:"propertyId,omitempty"`
	Name       string  `db:"name" json:"name"`
	Email      string  `db:"email" json:"email"`
	Phone      string  `db:"phone" json:"phone,omitempty"`
	Message    string  `db:"message" json:"message"`
	Read       bool    `db:"read_status" json:"read"`
	CreatedAt  string  `db:"created_at" json:"createdAt"`
}

type Testimonial struct {
	ID        string `db:"id" json:"id"`
	Author    string `db:"author" json:"author"`
	Location  string `db:"location" json:"location,omitempty"`
	Quote     string `db:"quote" json:"quote"`
	Published bool   `db:"published" json:"published"`
	CreatedAt string `db:"created_at" json:"createdAt"`
	UpdatedAt string `db:"updated_at" json:"updatedAt,omitempty"`
}

// SiteSettings is the single-row site configuration (WhatsApp widget).
type SiteSettings struct {
	WhatsappEnabled bool   `db:"whatsapp_enabled" json:"whatsappEnabled"`
	WhatsappNumber  string `db:"whatsapp_number" json:"whatsappNumber"`
	WhatsappMessage string `db:"whatsapp_message" json:"whatsappMessage"`
	UpdatedAt       string `db:"updated_at" json:"updatedAt,omitempty"`
}

// DestinationCount backs the destination landing menu.
type DestinationCount struct {
	Destination string `db:"destination" json:"destination"`
	Count       int    `db:"n" json:"count"`
}
