package service

import "fmt"

func welcomeEmailTemplate(name, setupURL, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`Hi %s,

Your account is ready. Tell us a bit about yourself so we can tailor your dashboard:

%s

Stay well,
The %s Team`, name, setupURL, appName)

	return subject, body
}
