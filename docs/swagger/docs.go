// Package swagger provides API documentation
package swagger

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &struct {
	Version     string
	Host        string
	BasePath    string
	Schemes     []string
	Title       string
	Description string
}{
	Version:     "2.0.0",
	Host:        "",
	BasePath:    "/",
	Schemes:     []string{},
	Title:       "Voice Gateway API",
	Description: "HTTP gateway between the OpenAI Realtime API and n8n webhooks",
}

// Placeholder for swagger documentation
// Run 'swag init' to generate complete API documentation
