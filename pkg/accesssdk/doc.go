/*
Package accesssdk is a typed client for the reservoir access service.

Client covers the public endpoints: invitation validation and health checks.
Session adds the bearer token for everything else.

	client := accesssdk.NewClient("https://access.example.com")

	// Landing page check, no credentials needed.
	inv, err := client.ValidateInvitation(ctx, token)

	// As the signed-in invitee.
	session := client.WithToken(accessToken)
	if _, err := session.EnsureProfile(ctx, accesssdk.EnsureProfileRequest{FirstName: "Ada"}); err != nil {
		return err
	}
	profile, err := session.AcceptInvitation(ctx, token)

Errors returned for non-success responses are *APIError; use errors.As to
inspect the HTTP status and error code.
*/
package accesssdk
