package pdga

// Tournament is an event as returned by the registry API.
type Tournament struct {
	TournamentID string `json:"tournament_id"`
	Name         string `json:"tournament_name"`
	City         string `json:"city"`
	StateProv    string `json:"state_prov"`
	Country      string `json:"country"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Class        string `json:"class"`
	Tier         string `json:"tier"`
	Status       string `json:"status"`
	WebsiteURL   string `json:"website_url,omitempty"`
}

// PlayerRecord is a registry member as returned by the API.
type PlayerRecord struct {
	FirstName                string `json:"first_name"`
	LastName                 string `json:"last_name"`
	PDGANumber               string `json:"pdga_number"`
	MembershipStatus         string `json:"membership_status"`
	MembershipExpirationDate string `json:"membership_expiration_date"`
	Classification           string `json:"classification"`
	City                     string `json:"city"`
	StateProv                string `json:"state_prov"`
	Country                  string `json:"country"`
	Rating                   string `json:"rating"`
}

type eventsResponse struct {
	Events []Tournament `json:"events"`
}

type playersResponse struct {
	Players []PlayerRecord `json:"players"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
