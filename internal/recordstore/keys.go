package recordstore

// Well-known record keys. Collection keys hold JSON arrays, the settings key
// holds a JSON object, and the auth keys hold plain JSON scalars.
const (
	KeyQuotes    = "quotesData"
	KeyCustomers = "customersData"
	KeyProjects  = "projectsData"
	KeySettings  = "adminSettings"

	KeyAdminAuthenticated = "adminAuthenticated"
	KeyAdminLoginTime     = "adminLoginTime"
	KeyLoginAttempts      = "loginAttempts"
	KeyLastAttemptTime    = "lastAttemptTime"
)
