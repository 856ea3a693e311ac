package mail

import "html/template"

var verificationTmpl = template.Must(template.New("verification").Parse(`<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background-color: #000; color: #fff; padding: 20px; text-align: center; }
      .content { padding: 20px; background-color: #f9f9f9; }
      .button { display: inline-block; padding: 12px 30px; background-color: #000; color: #fff; text-decoration: none; border-radius: 5px; margin: 20px 0; }
      .footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header"><h1>IDJ</h1></div>
      <div class="content">
        <h2>Welcome, {{.Username}}!</h2>
        <p>Thank you for signing up for IDJ. Please verify your email address to complete your registration.</p>
        <p>Click the button below to verify your email:</p>
        <a href="{{.Link}}" class="button">Verify Email</a>
        <p>Or copy and paste this link into your browser:</p>
        <p style="word-break: break-all; color: #666;">{{.Link}}</p>
        <p>This link will expire in 24 hours.</p>
        <p>If you didn't create an account, please ignore this email.</p>
      </div>
      <div class="footer"><p>&copy; {{.Year}} IDJ. All rights reserved.</p></div>
    </div>
  </body>
</html>`))

var resetTmpl = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background-color: #000; color: #fff; padding: 20px; text-align: center; }
      .content { padding: 20px; background-color: #f9f9f9; }
      .button { display: inline-block; padding: 12px 30px; background-color: #000; color: #fff; text-decoration: none; border-radius: 5px; margin: 20px 0; }
      .footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
      .warning { background-color: #fff3cd; border-left: 4px solid #ffc107; padding: 10px; margin: 20px 0; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header"><h1>IDJ</h1></div>
      <div class="content">
        <h2>Password Reset Request</h2>
        <p>Hello {{.Username}},</p>
        <p>We received a request to reset your password for your IDJ account.</p>
        <p>Click the button below to reset your password:</p>
        <a href="{{.Link}}" class="button">Reset Password</a>
        <p>Or copy and paste this link into your browser:</p>
        <p style="word-break: break-all; color: #666;">{{.Link}}</p>
        <div class="warning">
          <strong>Important:</strong> This link will expire in 1 hour. If you didn't request a password reset, please ignore this email and your password will remain unchanged.
        </div>
      </div>
      <div class="footer"><p>&copy; {{.Year}} IDJ. All rights reserved.</p></div>
    </div>
  </body>
</html>`))

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background-color: #000; color: #fff; padding: 20px; text-align: center; }
      .content { padding: 20px; background-color: #f9f9f9; }
      .footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header"><h1>IDJ</h1></div>
      <div class="content">
        <h2>Welcome to IDJ, {{.Username}}!</h2>
        <p>Your account has been successfully verified. You're all set to start spinning!</p>
        <p>Get started by exploring the app and sharing your mixes with the community.</p>
      </div>
      <div class="footer"><p>&copy; {{.Year}} IDJ. All rights reserved.</p></div>
    </div>
  </body>
</html>`))
