package postmark

// Config holds Postmark API credentials and sender identity.
// Tokens authenticate against the transactional message API; the sender
// and support addresses establish the From and Reply-To headers for every
// message.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN,required"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN,required"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	SupportEmail         string `env:"SUPPORT_EMAIL,required"`
}
