/*
Package otc implements an escrow based peer to peer exchange.

A party deposits an asset together with an offer naming the asset it wants
in return. Anyone, or only the counterparty named in the offer, may accept
by paying exactly the requested asset, which settles both sides at once.
Until then the depositor may withdraw the escrowed asset.

Handlers never move funds themselves. Every successful call returns an
ordered list of transfer instructions that the host executes after the
ledger changes of that call are committed.
*/
package otc
