package mailman

// List represents a Mailman 3 mailing list as returned by the lists resource
type List struct {
	ListID       string `json:"list_id"`
	FQDNListname string `json:"fqdn_listname"`
	ListName     string `json:"list_name"`
	MailHost     string `json:"mail_host"`
	DisplayName  string `json:"display_name"`
	Description  string `json:"description"`
	MemberCount  int    `json:"member_count"`
	VolumeNumber int    `json:"volume"`
	SelfLink     string `json:"self_link"`
}

// Member represents a roster entry of a mailing list
type Member struct {
	MemberID       string `json:"member_id"`
	Email          string `json:"email"`
	DisplayName    string `json:"display_name"`
	Role           string `json:"role"`
	ListID         string `json:"list_id"`
	DeliveryMode   string `json:"delivery_mode"`
	ModerationRule string `json:"moderation_action,omitempty"`
	SelfLink       string `json:"self_link"`
}

// HeldMessage represents an entry of a list's moderation queue
type HeldMessage struct {
	RequestID int    `json:"request_id"`
	Sender    string `json:"sender"`
	Subject   string `json:"subject"`
	MessageID string `json:"message_id"`
	Reason    string `json:"reason"`
	HoldDate  string `json:"hold_date"`
	Type      string `json:"type"`
	// Msg is the raw RFC 5322 message as held by Mailman
	Msg string `json:"msg"`
}

// SubscribeRequest holds the form fields sent to the members resource.
// Pre-approval flags skip the confirmation and moderation steps.
type SubscribeRequest struct {
	ListID       string `url:"list_id"`
	Subscriber   string `url:"subscriber"`
	DisplayName  string `url:"display_name,omitempty"`
	PreVerified  bool   `url:"pre_verified"`
	PreConfirmed bool   `url:"pre_confirmed"`
	PreApproved  bool   `url:"pre_approved"`
}

// Configuration is the read-only global configuration: section -> key -> value
type Configuration map[string]map[string]string

// entryPage is the envelope used by every Mailman collection resource
type entryPage[T any] struct {
	Start     int    `json:"start"`
	TotalSize int    `json:"total_size"`
	Entries   []T    `json:"entries"`
	HTTPEtag  string `json:"http_etag"`
}

// heldCount is the body of the held/count resource
type heldCount struct {
	Count int `json:"count"`
}

// configurationIndex is the body of system/configuration
type configurationIndex struct {
	Sections []string `json:"sections"`
}
