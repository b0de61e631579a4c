package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/mail"
	"strconv"
	"time"

	"github.com/northloop/userd/internal/userd/domain"
	"github.com/northloop/userd/internal/userd/service"
	"github.com/northloop/userd/pkg/apierr"
	"github.com/northloop/userd/pkg/slogx"
)

const dateLayout = "2006-01-02"

type UserHandler struct {
	UserService *service.UserService
}

type addressRequest struct {
	ApartmentNumber string `json:"apartmentNumber"`
	Floor           string `json:"floor"`
	Building        string `json:"building"`
	StreetNumber    string `json:"streetNumber"`
	Street          string `json:"street"`
	City            string `json:"city"`
	Country         string `json:"country"`
	AddressType     int    `json:"addressType"`
}

type userRequest struct {
	FullName    string           `json:"fullName"`
	Gender      string           `json:"gender"`
	DateOfBirth string           `json:"dateOfBirth"`
	Email       string           `json:"email"`
	PhoneNumber string           `json:"phoneNumber"`
	Username    string           `json:"username"`
	Password    string           `json:"password"`
	Type        string           `json:"type"`
	Addresses   []addressRequest `json:"addresses"`
}

type addressResponse struct {
	ApartmentNumber string `json:"apartmentNumber"`
	Floor           string `json:"floor"`
	Building        string `json:"building"`
	StreetNumber    string `json:"streetNumber"`
	Street          string `json:"street"`
	City            string `json:"city"`
	Country         string `json:"country"`
	AddressType     int    `json:"addressType"`
}

type userResponse struct {
	ID          string            `json:"id"`
	FullName    string            `json:"fullName"`
	Gender      string            `json:"gender"`
	DateOfBirth string            `json:"dateOfBirth"`
	Email       string            `json:"email"`
	PhoneNumber string            `json:"phoneNumber"`
	Username    string            `json:"username"`
	Status      string            `json:"status"`
	Type        string            `json:"type"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Addresses   []addressResponse `json:"addresses,omitempty"`
}

type userPageResponse struct {
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	Total      int            `json:"total"`
	TotalPages int            `json:"totalPages"`
	Users      []userResponse `json:"users"`
}

func decodeUserRequest(r *http.Request) (service.CreateUserInput, error) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return service.CreateUserInput{}, apierr.New(apierr.KindInvalidArgument, "invalid request body")
	}

	var fieldErrs []string
	if req.FullName == "" {
		fieldErrs = append(fieldErrs, "fullName must not be blank")
	}
	if req.Username == "" {
		fieldErrs = append(fieldErrs, "username must not be blank")
	}
	if req.Password == "" {
		fieldErrs = append(fieldErrs, "password must not be blank")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		fieldErrs = append(fieldErrs, "email is not a valid address")
	}
	if req.PhoneNumber == "" {
		fieldErrs = append(fieldErrs, "phoneNumber must not be blank")
	}

	var dob time.Time
	if req.DateOfBirth != "" {
		var err error
		dob, err = time.Parse(dateLayout, req.DateOfBirth)
		if err != nil {
			fieldErrs = append(fieldErrs, "dateOfBirth must be formatted yyyy-MM-dd")
		}
	}
	if len(fieldErrs) > 0 {
		return service.CreateUserInput{}, apierr.NewValidation(fieldErrs)
	}

	in := service.CreateUserInput{
		FullName:    req.FullName,
		Gender:      req.Gender,
		DateOfBirth: dob,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Username:    req.Username,
		Password:    req.Password,
		Type:        req.Type,
	}
	for _, a := range req.Addresses {
		in.Addresses = append(in.Addresses, service.AddressInput(a))
	}
	return in, nil
}

// HandleCreate godoc
//
//	@Summary		Create user
//	@Description	Creates a user with an explicit type; reserved for authenticated staff.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		userRequest	true	"Profile"
//	@Success		201		{object}	Envelope
//	@Failure		400		{object}	apierr.Response
//	@Failure		401		{object}	apierr.Response
//	@Failure		409		{object}	apierr.Response
//	@Router			/user [post].
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	in, err := decodeUserRequest(r)
	if err != nil {
		apierr.Write(w, r, err)
		return
	}

	u, err := h.UserService.Create(r.Context(), in)
	if err != nil {
		apierr.Write(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("user created", "user_id", u.ID)
	writeSuccess(w, http.StatusCreated, "user created", map[string]string{"userId": u.ID})
}

// HandleUpdate godoc
//
//	@Summary		Update user profile
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string		true	"User ID"
//	@Param			request	body		userRequest	true	"Profile"
//	@Success		200		{object}	Envelope
//	@Failure		400		{object}	apierr.Response
//	@Failure		404		{object}	apierr.Response
//	@Router			/user/{id} [put].
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, r, apierr.New(apierr.KindInvalidArgument, "invalid request body"))
		return
	}

	var dob time.Time
	if req.DateOfBirth != "" {
		var err error
		dob, err = time.Parse(dateLayout, req.DateOfBirth)
		if err != nil {
			apierr.Write(w, r, apierr.New(apierr.KindInvalidArgument, "dateOfBirth must be formatted yyyy-MM-dd"))
			return
		}
	}

	in := service.UpdateUserInput{
		FullName:    req.FullName,
		Gender:      req.Gender,
		DateOfBirth: dob,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Username:    req.Username,
	}
	for _, a := range req.Addresses {
		in.Addresses = append(in.Addresses, service.AddressInput(a))
	}

	if err := h.UserService.Update(r.Context(), r.PathValue("id"), in); err != nil {
		apierr.Write(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "user updated", nil)
}

// HandleChangeStatus godoc
//
//	@Summary		Change account status
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id		path		string	true	"User ID"
//	@Param			status	query		string	true	"ACTIVE, INACTIVE, NONE or BLOCKED"
//	@Success		200		{object}	Envelope
//	@Failure		400		{object}	apierr.Response
//	@Failure		404		{object}	apierr.Response
//	@Router			/user/{id}/status [patch].
func (h *UserHandler) HandleChangeStatus(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if err := h.UserService.ChangeStatus(r.Context(), r.PathValue("id"), status); err != nil {
		apierr.Write(w, r, err)
		return
	}
	slogx.FromContext(r.Context()).Info("user status changed",
		"user_id", r.PathValue("id"), "status", status)
	writeSuccess(w, http.StatusOK, "status updated", nil)
}

type changePasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// HandleChangePassword godoc
//
//	@Summary		Change password
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"User ID"
//	@Param			request	body		changePasswordRequest	true	"New password, entered twice"
//	@Success		200		{object}	Envelope
//	@Failure		400		{object}	apierr.Response
//	@Failure		404		{object}	apierr.Response
//	@Router			/user/{id}/password [patch].
func (h *UserHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, r, apierr.New(apierr.KindInvalidArgument, "invalid request body"))
		return
	}
	if req.Password == "" {
		apierr.Write(w, r, apierr.New(apierr.KindInvalidArgument, "password must not be blank"))
		return
	}

	err := h.UserService.ChangePassword(r.Context(), r.PathValue("id"), req.Password, req.ConfirmPassword)
	if err != nil {
		apierr.Write(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "password updated", nil)
}

// HandleDelete godoc
//
//	@Summary		Delete user
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{object}	Envelope
//	@Failure		404	{object}	apierr.Response
//	@Router			/user/{id} [delete].
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.UserService.Delete(r.Context(), r.PathValue("id")); err != nil {
		apierr.Write(w, r, err)
		return
	}
	slogx.FromContext(r.Context()).Info("user deleted", "user_id", r.PathValue("id"))
	writeSuccess(w, http.StatusOK, "user deleted", nil)
}

// HandleGet godoc
//
//	@Summary		Get user detail
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{object}	Envelope{data=userResponse}
//	@Failure		404	{object}	apierr.Response
//	@Router			/user/{id} [get].
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	detail, err := h.UserService.GetDetail(r.Context(), r.PathValue("id"))
	if err != nil {
		apierr.Write(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "user detail", toUserResponse(detail.User, detail.Addresses))
}

// HandleList godoc
//
//	@Summary		List users
//	@Description	Paginated user listing. sort accepts repeated "field:asc|desc"
//	@Description	expressions over a fixed set of sortable fields.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			page		query		int		false	"1-based page"	default(1)
//	@Param			pageSize	query		int		false	"Page size"		default(20)
//	@Param			sort		query		string	false	"field:asc or field:desc, repeatable"
//	@Success		200			{object}	Envelope{data=userPageResponse}
//	@Failure		400			{object}	apierr.Response
//	@Router			/user [get].
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := queryInt(q.Get("page"), 1)
	pageSize := queryInt(q.Get("pageSize"), 20)

	result, err := h.UserService.List(r.Context(), page, pageSize, q["sort"])
	if err != nil {
		apierr.Write(w, r, err)
		return
	}

	resp := userPageResponse{
		Page:       result.Page,
		PageSize:   result.PageSize,
		Total:      result.Total,
		TotalPages: result.TotalPages,
		Users:      make([]userResponse, 0, len(result.Users)),
	}
	for _, u := range result.Users {
		resp.Users = append(resp.Users, toUserResponse(u, nil))
	}
	writeSuccess(w, http.StatusOK, fmt.Sprintf("page %d of %d", result.Page, result.TotalPages), resp)
}

func toUserResponse(u domain.User, addrs []domain.Address) userResponse {
	resp := userResponse{
		ID:          u.ID,
		FullName:    u.FullName,
		Gender:      string(u.Gender),
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Username:    u.Username,
		Status:      string(u.Status),
		Type:        string(u.Type),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
	if !u.DateOfBirth.IsZero() {
		resp.DateOfBirth = u.DateOfBirth.Format(dateLayout)
	}
	for _, a := range addrs {
		resp.Addresses = append(resp.Addresses, addressResponse{
			ApartmentNumber: a.ApartmentNumber,
			Floor:           a.Floor,
			Building:        a.Building,
			StreetNumber:    a.StreetNumber,
			Street:          a.Street,
			City:            a.City,
			Country:         a.Country,
			AddressType:     a.AddressType,
		})
	}
	return resp
}

func queryInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
