package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/styledesk/styledesk/internal/config"
	"github.com/styledesk/styledesk/internal/models"
	"github.com/styledesk/styledesk/pkg/response"
	"gorm.io/gorm"
)

// ParsedCommand is the structured form of a command-panel input line.
type ParsedCommand struct {
	Verb     string            `json:"verb"`     // create, update, rename, delete, activate, list
	Category *models.Category  `json:"category"` // nil for category-less commands
	Name     string            `json:"name"`     // target token name
	NewName  string            `json:"new_name"` // rename target
	Values   map[string]string `json:"values"`   // key=value pairs
}

// CommandResult is returned to the panel after executing a command.
type CommandResult struct {
	Message string         `json:"message"`
	Parsed  *ParsedCommand `json:"parsed,omitempty"`
	Data    interface{}    `json:"data,omitempty"`
	Assist  bool           `json:"assist,omitempty"` // true when answered by the AI fallback
}

var verbAliases = map[string]string{
	"create":   "create",
	"add":      "create",
	"new":      "create",
	"make":     "create",
	"update":   "update",
	"change":   "update",
	"edit":     "update",
	"set":      "update",
	"rename":   "rename",
	"delete":   "delete",
	"remove":   "delete",
	"drop":     "delete",
	"activate": "activate",
	"use":      "activate",
	"apply":    "activate",
	"list":     "list",
	"show":     "list",
	"ls":       "list",
}

// categoryAliases maps spoken names onto category keys. Multi-word aliases
// are matched before single words.
var categoryAliases = map[string]string{
	"color scheme":  "colorScheme",
	"color schemes": "colorScheme",
	"colorscheme":   "colorScheme",
	"colors":        "colorScheme",
	"palette":       "colorScheme",
	"palettes":      "colorScheme",
	"typography":    "typography",
	"typographies":  "typography",
	"fonts":         "typography",
	"font":          "typography",
	"type scale":    "typography",
	"spacing":       "spacing",
	"spacings":      "spacing",
	"space":         "spacing",
	"border radius": "borderRadius",
	"border radii":  "borderRadius",
	"borderradius":  "borderRadius",
	"radius":        "borderRadius",
	"radii":         "borderRadius",
	"corners":       "borderRadius",
	"shadow":        "shadow",
	"shadows":       "shadow",
	"elevation":     "shadow",
	"animation":     "animation",
	"animations":    "animation",
	"motion":        "animation",
	"transitions":   "animation",
}

// CommandService parses and executes command-panel input. Parsing is
// deterministic; inputs that do not match the grammar are handed to the
// optional AI assist.
type CommandService struct {
	db *gorm.DB
	ai *AIService
}

func NewCommandService(db *gorm.DB, aiCfg *config.AIConfig) *CommandService {
	return &CommandService{db: db, ai: NewAIService(aiCfg)}
}

// token is one lexed unit of a command line. Quoted tells name detection
// apart from keyword detection.
type cmdToken struct {
	text   string
	quoted bool
}

// tokenize splits a command line on whitespace, honoring single and
// double quotes.
func tokenize(input string) []cmdToken {
	var tokens []cmdToken
	var current strings.Builder
	var quote rune

	flush := func(quoted bool) {
		if current.Len() > 0 || quoted {
			tokens = append(tokens, cmdToken{text: current.String(), quoted: quoted})
			current.Reset()
		}
	}

	for _, r := range input {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				flush(true)
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			flush(false)
			quote = r
		case r == ' ' || r == '\t' || r == '\n':
			flush(false)
		default:
			current.WriteRune(r)
		}
	}
	flush(quote != 0)

	return tokens
}

// ParseCommand turns a command line into its structured form. Returns a
// bad-request error when the line does not match the grammar.
func ParseCommand(input string) (*ParsedCommand, error) {
	tokens := tokenize(strings.TrimSpace(input))
	if len(tokens) == 0 {
		return nil, response.NewBadRequest("empty command")
	}

	verb, ok := verbAliases[strings.ToLower(tokens[0].text)]
	if !ok || tokens[0].quoted {
		return nil, response.NewBadRequest(fmt.Sprintf("unknown command verb %q", tokens[0].text))
	}

	cmd := &ParsedCommand{Verb: verb, Values: map[string]string{}}
	rest := tokens[1:]

	// Category detection: try two-word aliases first, then single words.
	// Quoted tokens never match a category.
	consumed := make([]bool, len(rest))
	for i := 0; i < len(rest) && cmd.Category == nil; i++ {
		if rest[i].quoted {
			continue
		}
		if i+1 < len(rest) && !rest[i+1].quoted {
			pair := strings.ToLower(rest[i].text + " " + rest[i+1].text)
			if key, ok := categoryAliases[pair]; ok {
				if cat, found := models.CategoryByKey(key); found {
					cmd.Category = &cat
					consumed[i], consumed[i+1] = true, true
					break
				}
			}
		}
		if key, ok := categoryAliases[strings.ToLower(rest[i].text)]; ok {
			if cat, found := models.CategoryByKey(key); found {
				cmd.Category = &cat
				consumed[i] = true
			}
		}
	}

	// Remaining tokens: quoted strings become names, key=value pairs become
	// values, "to"/"as" separate old and new names for rename.
	sawSeparator := false
	for i, tok := range rest {
		if consumed[i] {
			continue
		}
		lower := strings.ToLower(tok.text)

		switch {
		case !tok.quoted && (lower == "to" || lower == "as"):
			sawSeparator = true
		case !tok.quoted && strings.Contains(tok.text, "="):
			parts := strings.SplitN(tok.text, "=", 2)
			if parts[0] != "" {
				cmd.Values[parts[0]] = parts[1]
			}
		case tok.quoted || !isFillerWord(lower):
			if cmd.Name == "" && !sawSeparator {
				cmd.Name = tok.text
			} else if cmd.NewName == "" {
				cmd.NewName = tok.text
			}
		}
	}

	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	return cmd, nil
}

func isFillerWord(word string) bool {
	switch word {
	case "the", "a", "an", "called", "named", "with", "for", "of", "in", "all", "please":
		return true
	}
	return false
}

func validateCommand(cmd *ParsedCommand) error {
	if cmd.Verb != "list" && cmd.Category == nil {
		return response.NewBadRequest("command needs a token category (color scheme, typography, spacing, border radius, shadow, animation)")
	}

	switch cmd.Verb {
	case "create", "update", "delete", "activate":
		if cmd.Name == "" {
			return response.NewBadRequest(fmt.Sprintf("%s command needs a token name (quote it: %s spacing \"Compact\")", cmd.Verb, cmd.Verb))
		}
	case "rename":
		if cmd.Name == "" || cmd.NewName == "" {
			return response.NewBadRequest(`rename needs old and new names: rename spacing "Old" to "New"`)
		}
	}

	return nil
}

// Execute parses the input and runs the resulting command. Unparseable
// input falls back to the AI assist when enabled.
func (s *CommandService) Execute(ctx context.Context, input, actor string) (*CommandResult, error) {
	cmd, err := ParseCommand(input)
	if err != nil {
		if s.ai.IsEnabled() {
			return s.assist(ctx, input, err)
		}
		return nil, err
	}

	switch cmd.Verb {
	case "list":
		return s.execList(cmd)
	case "create":
		return s.execCreate(cmd, actor)
	case "update":
		return s.execUpdate(cmd, actor)
	case "rename":
		return s.execRename(cmd, actor)
	case "delete":
		return s.execDelete(cmd, actor)
	case "activate":
		return s.execActivate(cmd, actor)
	}

	return nil, response.NewBadRequest(fmt.Sprintf("unsupported verb %q", cmd.Verb))
}

// assist answers free-form questions with the configured AI provider,
// constrained to describing the command grammar and the design system.
func (s *CommandService) assist(ctx context.Context, input string, parseErr error) (*CommandResult, error) {
	prompt := fmt.Sprintf(`You are the command assistant of a design-system admin dashboard.
The panel accepts commands of the form:
  <verb> <category> "<name>" [key=value ...]
Verbs: create, update, rename (with 'to'), delete, activate, list.
Categories: color scheme, typography, spacing, border radius, shadow, animation.

The user typed: %q
It could not be parsed (%s). Reply with one or two short sentences suggesting
the closest valid command.`, input, parseErr.Error())

	answer, err := s.ai.Complete(ctx, prompt)
	if err != nil {
		// Assist is best effort; surface the original parse error.
		return nil, parseErr
	}

	return &CommandResult{Message: answer, Assist: true}, nil
}

func (s *CommandService) execList(cmd *ParsedCommand) (*CommandResult, error) {
	if cmd.Category == nil {
		keys := make([]string, 0, len(models.TokenCategories))
		for _, cat := range models.TokenCategories {
			keys = append(keys, cat.Label)
		}
		sort.Strings(keys)
		return &CommandResult{
			Message: "Available categories: " + strings.Join(keys, ", "),
			Parsed:  cmd,
		}, nil
	}

	svc := NewTokenService(s.db, *cmd.Category)
	list, err := svc.List()
	if err != nil {
		return nil, err
	}

	return &CommandResult{
		Message: fmt.Sprintf("%d %s token(s)", len(list.Items), cmd.Category.Label),
		Parsed:  cmd,
		Data:    list,
	}, nil
}

func (s *CommandService) execCreate(cmd *ParsedCommand, actor string) (*CommandResult, error) {
	svc := NewTokenService(s.db, *cmd.Category)
	scale := models.StringMap(cmd.Values)

	token, err := svc.Create(&CreateTokenRequest{Name: cmd.Name, Scale: scale}, actor)
	if err != nil {
		return nil, err
	}

	return &CommandResult{
		Message: fmt.Sprintf("Created %s %q (id %d)", cmd.Category.Label, token.Name, token.ID),
		Parsed:  cmd,
		Data:    token,
	}, nil
}

func (s *CommandService) execUpdate(cmd *ParsedCommand, actor string) (*CommandResult, error) {
	if len(cmd.Values) == 0 {
		return nil, response.NewBadRequest("update needs at least one key=value pair")
	}

	svc := NewTokenService(s.db, *cmd.Category)
	current, err := s.findByName(*cmd.Category, cmd.Name)
	if err != nil {
		return nil, err
	}

	// Merge the new pairs into the existing scale.
	scale := models.StringMap{}
	for k, v := range current.Scale {
		scale[k] = v
	}
	for k, v := range cmd.Values {
		scale[k] = v
	}

	token, err := svc.Update(current.ID, &UpdateTokenRequest{
		Scale:           scale,
		ExpectedVersion: current.Version,
	}, actor)
	if err != nil {
		return nil, err
	}

	return &CommandResult{
		Message: fmt.Sprintf("Updated %s %q to version %d", cmd.Category.Label, token.Name, token.Version),
		Parsed:  cmd,
		Data:    token,
	}, nil
}

func (s *CommandService) execRename(cmd *ParsedCommand, actor string) (*CommandResult, error) {
	svc := NewTokenService(s.db, *cmd.Category)
	current, err := s.findByName(*cmd.Category, cmd.Name)
	if err != nil {
		return nil, err
	}

	token, err := svc.Update(current.ID, &UpdateTokenRequest{
		Name:            cmd.NewName,
		ExpectedVersion: current.Version,
	}, actor)
	if err != nil {
		return nil, err
	}

	return &CommandResult{
		Message: fmt.Sprintf("Renamed %s %q to %q", cmd.Category.Label, cmd.Name, token.Name),
		Parsed:  cmd,
		Data:    token,
	}, nil
}

func (s *CommandService) execDelete(cmd *ParsedCommand, actor string) (*CommandResult, error) {
	svc := NewTokenService(s.db, *cmd.Category)
	current, err := s.findByName(*cmd.Category, cmd.Name)
	if err != nil {
		return nil, err
	}

	if err := svc.Delete(current.ID, actor); err != nil {
		return nil, err
	}

	return &CommandResult{
		Message: fmt.Sprintf("Deleted %s %q", cmd.Category.Label, cmd.Name),
		Parsed:  cmd,
	}, nil
}

func (s *CommandService) execActivate(cmd *ParsedCommand, actor string) (*CommandResult, error) {
	svc := NewTokenService(s.db, *cmd.Category)
	current, err := s.findByName(*cmd.Category, cmd.Name)
	if err != nil {
		return nil, err
	}

	token, err := svc.SetActive(current.ID, actor)
	if err != nil {
		return nil, err
	}

	return &CommandResult{
		Message: fmt.Sprintf("Activated %s %q", cmd.Category.Label, token.Name),
		Parsed:  cmd,
		Data:    token,
	}, nil
}

func (s *CommandService) findByName(cat models.Category, name string) (*models.DesignToken, error) {
	var token models.DesignToken
	err := s.db.Table(cat.Table).Where("name = ?", name).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound(fmt.Sprintf("no %s named %q", cat.Label, name))
		}
		return nil, err
	}
	return &token, nil
}
