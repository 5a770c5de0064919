package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/yeremiapane/retail-manager/integrity"
	"github.com/yeremiapane/retail-manager/services"
	"github.com/yeremiapane/retail-manager/utils"
)

var (
	ErrInvalidBody  = &CustomError{"Request body must be a form or a JSON object of strings"}
	ErrInvalidKey   = &CustomError{"Invalid identifier"}
	ErrUnknownOrder = &CustomError{"Order does not exist."}
)

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

// readFields collects the submitted values as integrity.Fields. Form posts
// and JSON objects are both accepted; JSON numbers keep the exact digits the
// client sent and booleans are turned back into their textual form.
func readFields(c *gin.Context) (integrity.Fields, error) {
	fields := integrity.Fields{}

	if c.ContentType() == binding.MIMEJSON {
		if c.Request.Body == nil {
			return nil, ErrInvalidBody
		}
		var body map[string]interface{}
		dec := json.NewDecoder(c.Request.Body)
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil {
			return nil, ErrInvalidBody
		}
		for name, raw := range body {
			switch v := raw.(type) {
			case nil:
			case string:
				fields[name] = v
			case json.Number:
				fields[name] = v.String()
			case bool:
				fields[name] = strconv.FormatBool(v)
			default:
				return nil, ErrInvalidBody
			}
		}
		return fields, nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return nil, ErrInvalidBody
	}
	for name, values := range c.Request.PostForm {
		if len(values) > 0 {
			fields[name] = values[0]
		}
	}
	return fields, nil
}

// statusFor maps a rejection reason to its HTTP status.
func statusFor(reason integrity.Reason) int {
	switch reason {
	case integrity.ReasonDuplicateKey:
		return http.StatusConflict
	case integrity.ReasonNotFound:
		return http.StatusNotFound
	case integrity.ReasonStoreFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// respondFailure writes the single message of a failed operation. Store
// errors only ever surface as the generic message.
func respondFailure(c *gin.Context, err error) {
	var custom *CustomError
	if errors.As(err, &custom) {
		utils.RespondError(c, http.StatusBadRequest, custom)
		return
	}
	var rej *integrity.Rejection
	if !errors.As(err, &rej) {
		// Read-side failures have not been logged by a service yet.
		utils.ErrorLogger.WithField("path", c.FullPath()).WithError(err).Error("request failed")
		rej = integrity.StoreFailure(err)
	}
	if rej.Reason == integrity.ReasonStoreFailure {
		utils.RespondError(c, http.StatusInternalServerError, errors.New(integrity.GenericFailureMessage))
		return
	}
	utils.RespondError(c, statusFor(rej.Reason), rej)
}

func inputType(f integrity.Format) string {
	switch f {
	case integrity.FormatInteger, integrity.FormatPrice:
		return "number"
	case integrity.FormatPhone:
		return "tel"
	case integrity.FormatDate:
		return "date"
	case integrity.FormatEmail:
		return "email"
	default:
		return "text"
	}
}

// buildForm lists the fields of rules that take part in op, in rule order.
// On change and delete forms the key is prefilled and read-only.
func buildForm(rules *integrity.EntityRules, op integrity.Operation, key string, action string) utils.Form {
	form := utils.Form{Action: action}
	switch op {
	case integrity.OpCreate:
		form.Title = "Insert " + rules.Name
		form.Submit = "Insert"
	case integrity.OpUpdate:
		form.Title = "Change " + rules.Name
		form.Submit = "Change"
	case integrity.OpDelete:
		form.Title = "Delete " + rules.Name
		form.Submit = "Delete"
	}

	for _, f := range rules.Fields {
		isKey := f.Name == rules.Key
		field := utils.FormField{
			Name:   f.Name,
			Label:  f.Label,
			Type:   inputType(f.Format),
			MaxLen: f.MaxLen,
		}
		switch {
		case isKey && op != integrity.OpCreate:
			field.Required = true
			field.Value = key
			field.ReadOnly = true
		case op == integrity.OpCreate:
			field.Required = f.Required
		case op == integrity.OpUpdate && f.Update != integrity.UpdateNever:
			field.Required = f.Update == integrity.UpdateRequired
		default:
			continue
		}
		form.Fields = append(form.Fields, field)
	}
	return form
}

// setOptions attaches select options to the named form field.
func setOptions(form *utils.Form, name string, options []string) {
	for i := range form.Fields {
		if form.Fields[i].Name == name {
			form.Fields[i].Options = options
		}
	}
}

// entityHandlers carries the mutation endpoints every entity shares.
type entityHandlers struct {
	kind      integrity.Kind
	path      string
	integrity *services.IntegrityService
}

func (h *entityHandlers) rules() *integrity.EntityRules {
	rules, err := h.integrity.Engine().Rules(h.kind)
	if err != nil {
		// Every controller is built for a kind of the default rule set.
		panic(err)
	}
	return rules
}

func (h *entityHandlers) form(op integrity.Operation, key string) utils.Form {
	action := h.path + "/insert"
	switch op {
	case integrity.OpUpdate:
		action = h.path + "/change"
	case integrity.OpDelete:
		action = h.path + "/delete"
	}
	return buildForm(h.rules(), op, strings.TrimSpace(key), action)
}

func (h *entityHandlers) mutate(c *gin.Context, op integrity.Operation, okStatus int, message string) {
	fields, err := readFields(c)
	if err != nil {
		respondFailure(c, err)
		return
	}
	outcome, err := h.integrity.Apply(c.Request.Context(), h.kind, op, fields)
	if err != nil {
		respondFailure(c, err)
		return
	}
	utils.RespondJSON(c, okStatus, message, outcome)
}

// Insert -> POST /<entity>/insert
func (h *entityHandlers) Insert(c *gin.Context) {
	h.mutate(c, integrity.OpCreate, http.StatusCreated, h.rules().Name+" created")
}

// Change -> POST /<entity>/change
func (h *entityHandlers) Change(c *gin.Context) {
	h.mutate(c, integrity.OpUpdate, http.StatusOK, h.rules().Name+" changed")
}

// Delete -> POST /<entity>/delete
func (h *entityHandlers) Delete(c *gin.Context) {
	h.mutate(c, integrity.OpDelete, http.StatusOK, h.rules().Name+" deleted")
}

// InsertForm -> GET /<entity>/insert
func (h *entityHandlers) InsertForm(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Insert form", h.form(integrity.OpCreate, ""))
}

// ChangeForm -> GET /<entity>/:key/change
func (h *entityHandlers) ChangeForm(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Change form", h.form(integrity.OpUpdate, c.Param(h.rules().Key)))
}

// DeleteForm -> GET /<entity>/:key/delete
func (h *entityHandlers) DeleteForm(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Delete confirmation", h.form(integrity.OpDelete, c.Param(h.rules().Key)))
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
