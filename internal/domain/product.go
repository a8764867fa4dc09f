package domain

// Record sources
const (
	SourceHTML        = "html"
	SourceURLFallback = "url_fallback"
	SourceCache       = "cache"
	SourceDefault     = "default"
)

// Default record values returned when extraction fails unexpectedly
const (
	DefaultTitle       = "Deal Alert"
	DefaultDescription = "Check out this amazing deal!"
)

// ProductRecord represents the product information extracted from a deal URL.
// Nullable fields are pointers so that missing values serialize as JSON null.
type ProductRecord struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	Image           *string  `json:"image"` // first of Images, kept for older clients
	Images          []string `json:"images"`
	Price           *string  `json:"price"`
	OriginalPrice   *string  `json:"originalPrice"`
	Store           *string  `json:"store"`
	Category        *string  `json:"category"`
	Brand           *string  `json:"brand"`
	Rating          *string  `json:"rating"`
	ReviewCount     *string  `json:"reviewCount"`
	Availability    *string  `json:"availability"`
	CouponCode      *string  `json:"couponCode"` // reserved, never populated
	ProductID       *string  `json:"productId"`
	IsStoreDetected bool     `json:"isStoreDetected"`
	Source          string   `json:"source"`
}

// NewProductRecord returns an empty record with a non-nil image list.
func NewProductRecord() *ProductRecord {
	return &ProductRecord{Images: []string{}}
}

// DefaultRecord is the last-resort record used when extraction fails outright.
func DefaultRecord() *ProductRecord {
	record := NewProductRecord()
	record.Title = StringPtr(DefaultTitle)
	record.Description = StringPtr(DefaultDescription)
	record.Source = SourceDefault
	return record
}

// SetImages stores the image list and keeps Image in sync with it.
func (r *ProductRecord) SetImages(images []string) {
	if images == nil {
		images = []string{}
	}
	r.Images = images
	r.Image = nil
	if len(images) > 0 {
		r.Image = StringPtr(images[0])
	}
}

// Clone returns a copy that shares no slices with r. String fields are
// replaced rather than mutated, so their pointers may be shared.
func (r *ProductRecord) Clone() *ProductRecord {
	if r == nil {
		return nil
	}
	out := *r
	out.Images = append([]string{}, r.Images...)
	return &out
}

// ValidationResult is returned by URL validation. When the URL could not be
// processed only IsReachable and Error are set.
type ValidationResult struct {
	IsReachable bool    `json:"isReachable"`
	Error       *string `json:"error,omitempty"`
	*ProductRecord
}

// StoreModalDecision tells the caller whether a store-specific entry form exists
type StoreModalDecision struct {
	UseModal bool    `json:"useModal"`
	Store    *string `json:"store"`
}

// StoreModalField describes one input of a store entry form
type StoreModalField struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder,omitempty"`
}

// StoreModalConfig holds UI hints for a store-specific entry form
type StoreModalConfig struct {
	Name   string            `json:"name"`
	Logo   string            `json:"logo"`
	Color  string            `json:"color"`
	Fields []StoreModalField `json:"fields"`
}

// FetchResult is the page content returned by a PageFetcher
type FetchResult struct {
	HTML     string
	Provider string
	Partial  bool // content passed only the relaxed acceptance check
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences p, returning "" for nil.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
