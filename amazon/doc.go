/*
Package amazon provides a connection to AWS through the AWS-SDK.

This package wraps the AWS-SDK to provide an easy instantiation of an AWS
session, plus the image content store built on S3. The full usage of the
returned session is explained through the AWS API:
https://docs.aws.amazon.com/sdk-for-go/api/aws.

*/
package amazon
