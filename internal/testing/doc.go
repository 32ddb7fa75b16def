// Package testing provides test infrastructure for auction scenario tests.
//
// # Overview
//
// The testing package provides:
//   - TestEnv: a market over an in-memory pebble database, with the local
//     ledger wired in as item registry, bank and royalty source
//   - ManualClock: the request time of every submission
//   - Amount helpers: USD and Coins for the test denomination
//   - Assertions: helpers for balances, item holders and request results
//
// Fluent request builders live in the auction subpackage.
//
// # Basic Usage
//
//	func TestBid(t *testing.T) {
//	    env := testing.NewTestEnv(t)
//	    env.Mint("alice", "1")
//	    env.Fund(1000, "bob")
//
//	    start := env.Now().Add(time.Minute)
//	    testing.RequireSuccess(t, env.Submit(
//	        auction.Create("alice", "1", start, start.Add(2*time.Hour)).StartingPrice(110).Build()))
//
//	    env.SetTime(start)
//	    testing.RequireSuccess(t, env.Submit(auction.Bid("bob", "1", 140).Build()))
//	    testing.RequireBalance(t, env, "bob", 860)
//	}
//
// # TestEnv
//
// Every TestEnv market is instantiated with DefaultConfig by the Operator
// account. Items and funds in custody belong to Custodian; market fees go to
// Collector. Attached funds are collected from the sender before each
// request runs, so a rejected request leaves every balance untouched.
//
//	env.Fund(500, "bob", "carol")   // credit accounts
//	env.Mint("alice", "1", "2")     // register items
//	env.SetRoyalty("artist", 1000)  // 10% royalty on the collection
//	env.Advance(time.Hour)          // move the clock
//	env.Balance("bob")              // balance in the test denomination
//	env.Owner("1")                  // current item holder
//	env.Auction("1")                // live auction with status, or nil
package testing
