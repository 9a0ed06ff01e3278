/*
Package asset defines the value types exchanged through the escrow.

An Asset is an unsigned 128 bit amount of exactly one denomination. A
denomination is either native, identified by a ledger wide symbol such as
"ujuno", or a token, identified by the address of the contract that issues
it. Native and token denominations never compare equal, even when their
names do.

Coin is the native funds representation attached to a request.
*/
package asset
