// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"net/url"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"agora/internal/models"
	"agora/internal/render"
	"agora/internal/session"
	"agora/internal/store"
	"agora/internal/web"
)

// totpIssuer labels the account inside authenticator apps.
const totpIssuer = "Agora"

// Auth groups signup, login, logout and the admin 2FA flow.
type Auth struct {
	renderer Pages
	sessions SessionManager
	users    UserRepo
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer Pages, sessions SessionManager, users UserRepo) *Auth {
	return &Auth{
		renderer: renderer,
		sessions: sessions,
		users:    users,
	}
}

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	if web.From(r.Context()).IsLogin() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	a.renderer.Page(w, r, "login", &render.PageData{Title: "Log in"})
}

// LoginSubmit checks the credentials and opens a session. Admins continue
// to 2FA; everyone else is logged in at once.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	account := trimmed(r.PostFormValue("account"))
	password := r.PostFormValue("password")

	fail := func(msg string) {
		a.renderer.Page(w, r, "login", &render.PageData{
			Title: "Log in",
			Data:  map[string]any{"error": msg, "account": account},
		})
	}

	user, err := a.users.FindByAccount(r.Context(), account)
	if err != nil {
		zap.S().Errorw("login lookup failed", "error", err)
		fail("An unexpected error occurred.")
		return
	}
	if user == nil || !a.users.CheckPassword(user, password) {
		fail("Invalid account or password.")
		return
	}

	if err := a.startSession(w, r, user); err != nil {
		zap.S().Errorw("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	switch {
	case !user.Needs2FA():
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case user.Needs2FASetup():
		http.Redirect(w, r, "/2fa/setup", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/2fa/verify", http.StatusSeeOther)
	}
}

func (a *Auth) startSession(w http.ResponseWriter, r *http.Request, user *models.User) error {
	_, err := a.sessions.Create(r.Context(), w, &session.Data{
		UserID:    user.ID,
		Account:   user.Account,
		TwoFADone: false,
	})
	return err
}

// SignupPage renders the account registration form.
func (a *Auth) SignupPage(w http.ResponseWriter, r *http.Request) {
	if web.From(r.Context()).IsLogin() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	a.renderer.Page(w, r, "signup", &render.PageData{Title: "Sign up"})
}

// SignupSubmit registers a regular account and logs it in.
func (a *Auth) SignupSubmit(w http.ResponseWriter, r *http.Request) {
	n := models.UserNew{
		Account:  trimmed(r.PostFormValue("account")),
		Nickname: trimmed(r.PostFormValue("nickname")),
		Password: r.PostFormValue("password"),
		Role:     models.RoleRegular,
	}

	fail := func(msg string) {
		a.renderer.Page(w, r, "signup", &render.PageData{
			Title: "Sign up",
			Data:  map[string]any{"error": msg, "account": n.Account, "nickname": n.Nickname},
		})
	}

	if msg := checkForm(n); msg != "" {
		fail(msg)
		return
	}

	user, err := a.users.Create(r.Context(), n)
	if errors.Is(err, store.ErrAccountTaken) {
		fail("That account name is already taken.")
		return
	}
	if err != nil {
		zap.S().Errorw("signup failed", "account", n.Account, "error", err)
		fail("An unexpected error occurred.")
		return
	}

	if err := a.startSession(w, r, user); err != nil {
		zap.S().Errorw("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	zap.S().Infow("account created", "account", user.Account)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// qrBase64 encodes an otpauth URI as a base64 PNG QR code.
func qrBase64(uri string) (string, error) {
	png, err := qrcode.Encode(uri, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}

// TwoFASetupPage generates a fresh TOTP secret and shows its QR code.
func (a *Auth) TwoFASetupPage(w http.ResponseWriter, r *http.Request) {
	sess := web.From(r.Context()).Session

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: sess.Account,
	})
	if err != nil {
		zap.S().Errorw("totp generate failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := a.users.SetTOTPSecret(r.Context(), sess.UserID, key.Secret()); err != nil {
		zap.S().Errorw("save totp secret failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderSetup(w, r, key, "")
}

func (a *Auth) renderSetup(w http.ResponseWriter, r *http.Request, key *otp.Key, errMsg string) {
	qr, err := qrBase64(key.URL())
	if err != nil {
		zap.S().Errorw("qr code generation failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := map[string]any{"qr_code": qr, "secret": key.Secret()}
	if errMsg != "" {
		data["error"] = errMsg
	}
	a.renderer.Page(w, r, "2fa_setup", &render.PageData{
		Title: "Set up two-factor authentication",
		Data:  data,
	})
}

// TwoFAVerifyPage renders the code entry form for admins with 2FA enabled.
func (a *Auth) TwoFAVerifyPage(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "2fa_verify", &render.PageData{Title: "Two-factor authentication"})
}

// TwoFASubmit validates a TOTP code for both first-time setup and regular
// verification, then marks the session as 2FA-complete.
func (a *Auth) TwoFASubmit(w http.ResponseWriter, r *http.Request) {
	sess := web.From(r.Context()).Session
	code := trimmed(r.PostFormValue("code"))

	user, err := a.users.FindByID(r.Context(), sess.UserID)
	if err != nil || user == nil {
		zap.S().Errorw("user lookup for 2fa failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if user.TOTPSecret == nil {
		http.Redirect(w, r, "/2fa/setup", http.StatusSeeOther)
		return
	}

	if !totp.Validate(code, *user.TOTPSecret) {
		const msg = "Invalid code. Please try again."
		if !user.TOTPEnabled {
			key, err := otp.NewKeyFromURL(totpURL(user.Account, *user.TOTPSecret))
			if err != nil {
				zap.S().Errorw("totp key rebuild failed", "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			a.renderSetup(w, r, key, msg)
			return
		}
		a.renderer.Page(w, r, "2fa_verify", &render.PageData{
			Title: "Two-factor authentication",
			Data:  map[string]any{"error": msg},
		})
		return
	}

	if !user.TOTPEnabled {
		if err := a.users.EnableTOTP(r.Context(), user.ID); err != nil {
			zap.S().Errorw("enable totp failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		zap.S().Errorw("session update failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// totpURL rebuilds the otpauth URL for an existing secret.
func totpURL(account, secret string) string {
	q := url.Values{}
	q.Set("secret", secret)
	q.Set("issuer", totpIssuer)
	return "otpauth://totp/" + url.PathEscape(totpIssuer+":"+account) + "?" + q.Encode()
}

// Logout destroys the session and returns to the front page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		zap.S().Warnw("session destroy failed", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
