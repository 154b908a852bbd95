package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/ajramos/mm3commander/internal/mailman"
	"github.com/go-playground/validator/v10"
	"gopkg.in/ini.v1"
)

// DefaultMailmanConfigPath is where Mailman 3 keeps its configuration
const DefaultMailmanConfigPath = "/etc/mailman3/mailman.cfg"

// WebServiceSection is the mailman.cfg section describing the REST API
const WebServiceSection = "webservice"

var (
	// ErrMissingSection is returned when mailman.cfg has no [webservice] section
	ErrMissingSection = errors.New("no webservice section found")

	// ErrInvalidMailmanConfig is returned when the section is incomplete
	ErrInvalidMailmanConfig = errors.New("invalid webservice configuration")
)

// WebService holds the REST API parameters of mailman.cfg
type WebService struct {
	UseHTTPS  bool   `ini:"use_https"`
	Hostname  string `ini:"hostname" validate:"required"`
	Port      int    `ini:"port" validate:"min=1,max=65535"`
	AdminUser string `ini:"admin_user" validate:"required"`
	AdminPass string `ini:"admin_pass" validate:"required"`
}

// URL builds the REST API root, e.g. http://localhost:8001/3.1
func (w *WebService) URL() string {
	scheme := "http"
	if w.UseHTTPS {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, net.JoinHostPort(w.Hostname, strconv.Itoa(w.Port)), mailman.APIVersion)
}

// ClientConfig returns the REST client configuration for this section
func (w *WebService) ClientConfig(cfg *Config) mailman.Config {
	return mailman.Config{
		BaseURL:  w.URL(),
		Username: w.AdminUser,
		Password: w.AdminPass,
		Timeout:  cfg.GetTimeout(),
	}
}

// FieldError is a single problem found in the webservice section
type FieldError struct {
	Key     string
	Message string
}

// FieldErrors collects every problem found in the webservice section
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d error(s)", ErrInvalidMailmanConfig, len(fe))
	for _, e := range fe {
		fmt.Fprintf(&sb, "; %s: %s", e.Key, e.Message)
	}
	return sb.String()
}

func (fe FieldErrors) Unwrap() error { return ErrInvalidMailmanConfig }

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report keys by their mailman.cfg name
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("ini"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// validationMessage returns a human-readable message for a validation error
func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "key is required"
	case "min":
		return fmt.Sprintf("must be >= %s", e.Param())
	case "max":
		return fmt.Sprintf("must be <= %s", e.Param())
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// mailmanLoadOptions match how Python's configparser reads mailman.cfg
var mailmanLoadOptions = ini.LoadOptions{
	Insensitive:                true,
	AllowPythonMultilineValues: true,
	IgnoreInlineComment:        true,
}

// LoadMailmanConfig reads and validates the [webservice] section of mailman.cfg
func LoadMailmanConfig(path string) (*WebService, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return parseMailmanConfig(data, path)
}

// ParseMailmanConfig is LoadMailmanConfig over in-memory data
func ParseMailmanConfig(data []byte) (*WebService, error) {
	return parseMailmanConfig(data, "mailman configuration")
}

func parseMailmanConfig(data []byte, source string) (*WebService, error) {
	f, err := ini.LoadSources(mailmanLoadOptions, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", source, err)
	}

	if !f.HasSection(WebServiceSection) {
		return nil, fmt.Errorf("%s: %w", source, ErrMissingSection)
	}
	sec := f.Section(WebServiceSection)
	ws := &WebService{}
	if err := sec.StrictMapTo(ws); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", source, ErrInvalidMailmanConfig, err)
	}

	var problems FieldErrors
	// use_https has no zero value to validate against, so its presence is checked here
	if !sec.HasKey("use_https") {
		problems = append(problems, FieldError{Key: "use_https", Message: "key is required"})
	}
	if err := validate.Struct(ws); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, fmt.Errorf("%s: %w: %v", source, ErrInvalidMailmanConfig, err)
		}
		for _, e := range verrs {
			problems = append(problems, FieldError{Key: e.Field(), Message: validationMessage(e)})
		}
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%s: %w", source, problems)
	}
	return ws, nil
}
