package leads

// Lead represents a contact form submission before normalization.
// FirstName, LastName and Email are required; the rest is optional.
type Lead struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Company   string
	Message   string
}

// SubmitResult is the normalized outcome of a submission attempt. Success and
// Message are always populated; Data carries the decoded response body on
// success.
type SubmitResult struct {
	Success bool
	Message string
	Data    map[string]any
}

// submitPayload is the wire format the lead endpoint accepts.
type submitPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// BusinessType is a value/label pair for the business-category selector.
type BusinessType struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// businessTypes is the fixed enumeration offered in the contact form. Labels
// are Spanish, matching the landing site audience.
var businessTypes = []BusinessType{
	{Value: "retail", Label: "Comercio / Retail"},
	{Value: "services", Label: "Servicios"},
	{Value: "restaurant", Label: "Restaurante / Bar"},
	{Value: "manufacturing", Label: "Manufactura"},
	{Value: "healthcare", Label: "Salud"},
	{Value: "education", Label: "Educación"},
	{Value: "technology", Label: "Tecnología"},
	{Value: "other", Label: "Otro"},
}

// BusinessTypes returns the fixed business-category list for form UIs.
func (c *Client) BusinessTypes() []BusinessType {
	out := make([]BusinessType, len(businessTypes))
	copy(out, businessTypes)
	return out
}
