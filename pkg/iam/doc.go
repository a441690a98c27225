// Package iam is the identity bounded context.
//
// The only flow it owns today is federated sign-up linking: when a user signs
// in through an external provider for the first time, the pool's pre sign-up
// trigger links that external identity to the existing account with the same
// email instead of letting the pool create a duplicate.
//
//	iam/presignup                 decision logic (router, parser, resolver, linker)
//	iam/presignup/presignupinfra  Cognito, audit and notification adapters
//	iam/iamcontainer              composition of the above
package iam
