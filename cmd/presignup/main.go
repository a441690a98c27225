// cmd/presignup
//
// Lambda entrypoint for the Cognito pre sign-up trigger. Logging is configured
// from LOG_* and the rest of the runtime from the environment (see pkg/config).
package main

import (
	"context"

	"github.com/Abraxas-365/cognito-linker/pkg/config"
	"github.com/Abraxas-365/cognito-linker/pkg/iam/iamcontainer"
	"github.com/Abraxas-365/cognito-linker/pkg/logx"
	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	cfg := config.Load()

	container, err := iamcontainer.New(context.Background(), iamcontainer.Deps{Cfg: cfg})
	if err != nil {
		logx.Fatalf("Failed to initialize IAM container: %v", err)
	}

	logx.Infof("🚀 Pre sign-up trigger ready (source: %s)", cfg.PreSignup.TriggerSource)
	lambda.Start(container.PreSignupHandler.Invoke)
}
