package notify

import (
	"context"
	"fmt"
)

// Branded messages for the HOOB marketing site. Layout and palette follow
// the original landing-page design.

func (m *Mailer) SendVerificationCode(ctx context.Context, to, name, code string) error {
	text := fmt.Sprintf("Your verification code is %s", code)
	html := fmt.Sprintf(`
<div style="font-family: Inter, sans-serif; background:#f5f0ff; padding:24px; color:#4B5563;">
  <div style="max-width:600px; margin:auto; background:#ffffff; border-radius:12px; padding:32px; box-shadow:0 0 20px rgba(131,88,212,0.2);">
    <h2 style="color:#8358d4; font-family:Poppins,sans-serif;">Hi %s,</h2>
    <p style="font-size:16px;">Welcome to <strong>HOOB</strong> 🚀</p>
    <p style="margin:16px 0;">Here’s your verification code:</p>
    <div style="text-align:center; margin:20px 0;">
      <span style="display:inline-block; background:#8358d4; color:#fff; padding:12px 24px; border-radius:8px; font-size:20px; letter-spacing:4px;">%s</span>
    </div>
    <p>This code expires in <strong>10 minutes</strong>.</p>
    <p style="font-size:14px; color:#6b45ac;">Thanks for joining us,<br/>The HOOB Team</p>
  </div>
</div>`, name, code)
	return m.Send(ctx, to, "HOOB Verification Code", text, html)
}

func (m *Mailer) SendResetCode(ctx context.Context, to, code string) error {
	text := fmt.Sprintf("Your password reset code is %s", code)
	html := fmt.Sprintf(`
<div style="font-family: Inter, sans-serif; background:#f5f0ff; padding:24px; color:#4B5563;">
  <div style="max-width:600px; margin:auto; background:#ffffff; border-radius:12px; padding:32px; box-shadow:0 0 20px rgba(131,88,212,0.2);">
    <h2 style="color:#8358d4; font-family:Poppins,sans-serif;">Password Reset</h2>
    <p>Here’s your reset code:</p>
    <div style="text-align:center; margin:20px 0;">
      <span style="display:inline-block; background:#9B59B6; color:#fff; padding:12px 24px; border-radius:8px; font-size:20px; letter-spacing:4px;">%s</span>
    </div>
    <p>This code expires in <strong>10 minutes</strong>.</p>
    <p style="font-size:14px; color:#6b45ac;">The HOOB Team</p>
  </div>
</div>`, code)
	return m.Send(ctx, to, "HOOB Password Reset Code", text, html)
}

func (m *Mailer) SendWaitlistWelcome(ctx context.Context, to string) error {
	text := `Welcome to HOOB; you’re now officially on our waitlist and part of our insider community. 🚀

This means:
✅ Early access to HOOB before anyone else
✅ Exclusive updates, insights & sneak peeks
✅ A front-row seat to the future of work, learning, and opportunities

We’ll keep things valuable (no spam, promise).
Until then, get ready — we’re building something game-changing.

Catch you in the next build ✨`
	html := `
<div style="font-family: Inter, sans-serif; background:#f5f0ff; padding:20px; border-radius:12px; max-width:600px; margin:auto;">
  <div style="text-align:center; padding:20px; border-radius:12px; background:linear-gradient(135deg, #8358d4 0%, #9B59B6 100%); color:#fff;">
    <h1 style="font-family:Poppins, sans-serif; font-size:24px; margin:0;">🎉 You’re In!</h1>
    <p style="margin:8px 0 0;">Welcome to <strong>HOOB</strong></p>
  </div>
  <div style="padding:20px; background:#ffffff; border-radius:12px; margin-top:15px; box-shadow:0 0 20px rgba(131,88,212,0.1);">
    <p style="font-size:16px; color:#4B5563; margin-bottom:15px;">You’re now officially on our waitlist and part of our insider community 🚀</p>
    <ul style="padding-left:20px; color:#111; line-height:1.6;">
      <li>✅ Early access to HOOB before anyone else</li>
      <li>✅ Exclusive updates, insights & sneak peeks</li>
      <li>✅ A front-row seat to the future of work, learning, and opportunities</li>
    </ul>
    <p style="margin-top:20px; color:#4B5563;">We’ll keep things valuable (<strong>no spam, promise</strong>).<br/>Until then, get ready — we’re building something game-changing.</p>
    <p style="margin-top:20px; font-weight:bold; color:#8358d4;">Catch you in the next build ✨</p>
  </div>
</div>`
	return m.Send(ctx, to, "🎉 You’re In! Welcome to HOOB", text, html)
}

func (m *Mailer) SendAdminCreated(ctx context.Context, to string) error {
	text := "You have been added as an admin on HOOB"
	html := fmt.Sprintf(`<p>Your admin account is ready. Email: %s</p>`, to)
	return m.Send(ctx, to, "HOOB Admin Account Created", text, html)
}

func (m *Mailer) SendBroadcast(ctx context.Context, to, subject, message string) error {
	return m.Send(ctx, to, subject, message, fmt.Sprintf("<p>%s</p>", message))
}
