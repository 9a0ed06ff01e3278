/*
Package errors implements the error taxonomy shared by every otc package.

Each failure category is a root error registered with a unique ABCI code using
Register. Runtime errors should always wrap one of the root errors, for example

	errors.Wrapf(errors.ErrNotFound, "deposit %d", id)

so that callers can classify them with ErrNotFound.Is(err) and the host can
be given a stable (code, log) pair by ABCIInfo.

The innermost Wrap attaches a stack trace. Use %+v when printing to see it.
Do not create wrapped errors as package level variables or the recorded
stack trace is useless.
*/
package errors
