package client

import (
	"context"
	"io"
)

// ProfileForm is the profile screen's form state. Empty fields are omitted
// from the update request and left unchanged server-side.
type ProfileForm struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// ProfileView backs the profile screen: avatar upload with progress, the
// profile form, and the account actions.
type ProfileView struct {
	api      *Client
	uploader *Uploader
	store    *Store

	form     ProfileForm
	filePerc int
}

func NewProfileView(api *Client, uploader *Uploader, store *Store) *ProfileView {
	return &ProfileView{api: api, uploader: uploader, store: store}
}

func (v *ProfileView) Form() ProfileForm {
	return v.form
}

func (v *ProfileView) SetForm(form ProfileForm) {
	v.form = form
}

// FilePerc is the last observed upload percentage.
func (v *ProfileView) FilePerc() int {
	return v.filePerc
}

// UploadAvatar streams the picked file to object storage, tracking progress
// until it reaches 100, then stores the resulting URL in the form. Upload
// failures surface once; there is no retry.
func (v *ProfileView) UploadAvatar(ctx context.Context, fileName string, r io.Reader, size int64) error {
	up := v.uploader.Start(ctx, fileName, r, size)

	for pct := range up.Progress {
		v.filePerc = pct
	}
	res := <-up.Done
	if res.Err != nil {
		return res.Err
	}
	v.form.Avatar = res.URL
	return nil
}

// Submit sends the form to the user-update endpoint, driving the store
// through the start/success/failure actions.
func (v *ProfileView) Submit(ctx context.Context, userID string) error {
	v.store.Dispatch(Action{Type: UpdateUserStart})

	user, err := v.api.UpdateUser(ctx, userID, v.form)
	if err != nil {
		v.store.Dispatch(Action{Type: UpdateUserFailure, Err: err.Error()})
		return err
	}
	v.store.Dispatch(Action{Type: UpdateUserSuccess, User: user})
	return nil
}

func (v *ProfileView) DeleteAccount(ctx context.Context, userID string) error {
	v.store.Dispatch(Action{Type: DeleteUserStart})

	if err := v.api.DeleteUser(ctx, userID); err != nil {
		v.store.Dispatch(Action{Type: DeleteUserFailure, Err: err.Error()})
		return err
	}
	v.store.Dispatch(Action{Type: DeleteUserSuccess})
	return nil
}

func (v *ProfileView) SignOut(ctx context.Context) error {
	if err := v.api.SignOut(ctx); err != nil {
		return err
	}
	v.store.Dispatch(Action{Type: SignOutSuccess})
	return nil
}
