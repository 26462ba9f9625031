package controllers

import (
	"strconv"
	"strings"

	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
	"github.com/shashiranjanraj/vastra/pkg/session"
)

// AddressController manages the user's shipping addresses. Mutations
// redirect back into checkout with a "from" flag so a pending buy-now
// intent survives the detour.
type AddressController struct {
	service *services.AddressService
}

func NewAddressController() *AddressController {
	return &AddressController{service: services.NewAddressService()}
}

func (ct *AddressController) List(c *ctx.Context) {
	addresses, err := ct.service.List(currentUser(c))
	if err != nil {
		fail(c, session.FromCtx(c.R), err, "/checkout")
		return
	}
	c.Success(addresses)
}

func (ct *AddressController) Add(c *ctx.Context) {
	sess := session.FromCtx(c.R)

	var in services.AddressInput
	if !ct.bind(c, &in) {
		return
	}
	address, err := ct.service.Add(currentUser(c), in)
	if err != nil {
		fail(c, sess, err, "/checkout?from=address_add")
		return
	}

	if c.IsXHR() {
		c.Created(map[string]interface{}{"message": "Address added successfully!", "address": address})
		return
	}
	redirectWith(c, sess, "success", "Address added successfully!", "/checkout?from=address_add")
}

func (ct *AddressController) Update(c *ctx.Context) {
	sess := session.FromCtx(c.R)

	id, err := strconv.ParseUint(c.Param("address_id"), 10, 32)
	if err != nil {
		c.NotFound()
		return
	}

	var in services.AddressInput
	if !ct.bind(c, &in) {
		return
	}
	address, err := ct.service.Update(currentUser(c), uint(id), in)
	if err != nil {
		fail(c, sess, err, "/checkout?from=address_update")
		return
	}

	if c.IsXHR() {
		c.Success(map[string]interface{}{"message": "Address updated successfully!", "address": address})
		return
	}
	redirectWith(c, sess, "success", "Address updated successfully!", "/checkout?from=address_update")
}

// bind accepts the address form as JSON or a classic form post.
func (ct *AddressController) bind(c *ctx.Context, in *services.AddressInput) bool {
	if strings.Contains(c.Header("Content-Type"), "application/json") {
		if !c.BindJSON(in) {
			return false
		}
	} else {
		in.FullName = c.PostForm("full_name")
		in.PhoneNumber = c.PostForm("phone_number")
		in.Pincode = c.PostForm("pincode")
		in.City = c.PostForm("city")
		in.State = c.PostForm("state")
		in.Landmark = c.PostForm("landmark")
		in.AddressLine = c.PostForm("address_line")
	}
	if errs := c.Validate(in); errs != nil {
		c.ValidationError(errs)
		return false
	}
	return true
}
