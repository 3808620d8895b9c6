// Package universe holds the static ticker list the screener runs over.
package universe

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultTickers is the built-in NSE universe (Yahoo Finance symbols).
// Override with a ticker file when a different universe is needed.
var DefaultTickers = []string{
	"RELIANCE.NS", "TCS.NS", "HDFCBANK.NS", "ICICIBANK.NS", "INFY.NS",
	"HINDUNILVR.NS", "ITC.NS", "SBIN.NS", "BHARTIARTL.NS", "KOTAKBANK.NS",
	"LT.NS", "AXISBANK.NS", "ASIANPAINT.NS", "MARUTI.NS", "BAJFINANCE.NS",
	"HCLTECH.NS", "SUNPHARMA.NS", "WIPRO.NS", "ULTRACEMCO.NS", "TITAN.NS",
	"ONGC.NS", "NTPC.NS", "POWERGRID.NS", "NESTLEIND.NS", "TATAMOTORS.NS",
	"TATASTEEL.NS", "JSWSTEEL.NS", "ADANIENT.NS", "ADANIPORTS.NS", "COALINDIA.NS",
	"BAJAJFINSV.NS", "GRASIM.NS", "TECHM.NS", "HINDALCO.NS", "DRREDDY.NS",
	"CIPLA.NS", "EICHERMOT.NS", "BRITANNIA.NS", "APOLLOHOSP.NS", "DIVISLAB.NS",
	"HEROMOTOCO.NS", "BAJAJ-AUTO.NS", "TATACONSUM.NS", "INDUSINDBK.NS", "SBILIFE.NS",
	"HDFCLIFE.NS", "UPL.NS", "BPCL.NS", "SHREECEM.NS", "M&M.NS",
	"VEDL.NS", "GODREJCP.NS", "DABUR.NS", "PIDILITIND.NS", "SIEMENS.NS",
	"DLF.NS", "AMBUJACEM.NS", "GAIL.NS", "BANKBARODA.NS", "PNB.NS",
	"CANBK.NS", "IOC.NS", "LUPIN.NS", "AUROPHARMA.NS", "ZEEL.NS",
	"MOTHERSON.NS", "TVSMOTOR.NS", "ASHOKLEY.NS", "BHEL.NS", "SAIL.NS",
	"NMDC.NS", "RECLTD.NS", "PFC.NS", "IRCTC.NS", "INDIGO.NS",
	"NAUKRI.NS", "ZOMATO.NS", "PAYTM.NS", "POLICYBZR.NS", "DMART.NS",
}

// Load returns the ticker universe. An empty path yields the built-in
// list; otherwise the file is read one symbol per line, blank lines and
// '#' comments ignored. An empty universe is a run-level error: the
// screener has nothing to do and must not silently report zero signals.
func Load(path string) ([]string, error) {
	if path == "" {
		return DefaultTickers, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open universe file: %w", err)
	}
	defer f.Close()

	var tickers []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tickers = append(tickers, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read universe file: %w", err)
	}
	if len(tickers) == 0 {
		return nil, fmt.Errorf("universe file %s contains no tickers", path)
	}
	return tickers, nil
}
